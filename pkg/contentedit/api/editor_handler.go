// Package api exposes the content editors over HTTP. Every endpoint is
// stateless: the request carries the current value and the response carries
// the transformed value.
package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/content-editor/pkg/contentedit"
	"github.com/tendant/content-editor/pkg/contentedit/gallery"
	"github.com/tendant/content-editor/pkg/contentedit/navigation"
	"github.com/tendant/content-editor/pkg/contentedit/structured"
)

// EditorHandler handles the editing endpoints.
type EditorHandler struct {
	resolver   contentedit.Resolver
	fields     contentedit.FieldSource
	navOpts    navigation.Options
	structOpts []structured.Option
}

// HandlerOption configures an EditorHandler.
type HandlerOption func(*EditorHandler)

// WithNavigationOptions sets the navigation tree bounds.
func WithNavigationOptions(opts navigation.Options) HandlerOption {
	return func(h *EditorHandler) { h.navOpts = opts }
}

// WithStructuredOptions sets the structured editor options.
func WithStructuredOptions(opts ...structured.Option) HandlerOption {
	return func(h *EditorHandler) { h.structOpts = opts }
}

// NewEditorHandler creates a handler. A nil resolver leaves media locations
// unresolved; a nil field source plans every entry from its data alone.
func NewEditorHandler(resolver contentedit.Resolver, fields contentedit.FieldSource, opts ...HandlerOption) *EditorHandler {
	h := &EditorHandler{
		resolver: resolver,
		fields:   fields,
		navOpts:  navigation.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the router for editor endpoints
func (h *EditorHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/classify", h.Classify)
	r.Post("/raw/parse", h.ParseRaw)
	r.Post("/raw/format", h.FormatRaw)
	r.Post("/structured/apply", h.ApplyStructured)
	r.Post("/structured/rows", h.StructuredRows)
	r.Post("/gallery/apply", h.ApplyGallery)
	r.Post("/gallery/tiles", h.GalleryTiles)
	r.Post("/navigation/apply", h.ApplyNavigation)
	r.Post("/navigation/preview", h.NavigationPreview)
	r.Get("/media/resolve", h.ResolveMedia)
	r.Get("/content-types/{content_type}/fields", h.GetFields)
	r.Post("/content-types/{content_type}/plan", h.PlanEntry)
	return r
}

// ClassifyRequest asks for the rendering strategy of a value.
type ClassifyRequest struct {
	Value contentedit.Value    `json:"value"`
	Hint  contentedit.TypeHint `json:"hint,omitempty"`
}

// ClassifyResponse carries the classification and the delegated editor.
type ClassifyResponse struct {
	Classification contentedit.Classification `json:"classification"`
	Editor         contentedit.EditorKind     `json:"editor"`
}

// RawParseRequest carries raw-mode text.
type RawParseRequest struct {
	Text string `json:"text"`
}

// RawParseResponse reports whether the text is valid JSON. Value is only
// meaningful when Valid is true.
type RawParseResponse struct {
	Valid bool              `json:"valid"`
	Value contentedit.Value `json:"value"`
	Error string            `json:"error,omitempty"`
}

// ValueRequest carries a value.
type ValueRequest struct {
	Value contentedit.Value `json:"value"`
}

// RawFormatResponse carries the indented text of a value.
type RawFormatResponse struct {
	Text string `json:"text"`
}

// ApplyRequest carries a value and one action to apply to it.
type ApplyRequest struct {
	Value  contentedit.Value  `json:"value"`
	Action contentedit.Action `json:"action"`
}

// ApplyResponse carries the edited value. Changed is false for no-ops.
type ApplyResponse struct {
	Value   contentedit.Value `json:"value"`
	Changed bool              `json:"changed"`
}

// RowsRequest asks for the display rows of the container at Pointer.
type RowsRequest struct {
	Value   contentedit.Value `json:"value"`
	Pointer string            `json:"pointer,omitempty"`
}

// RowsResponse carries the display rows.
type RowsResponse struct {
	Classification contentedit.Classification `json:"classification"`
	Rows           []structured.Row           `json:"rows"`
}

// TilesResponse carries gallery tiles.
type TilesResponse struct {
	Tiles []gallery.Tile `json:"tiles"`
}

// PreviewResponse carries the read-only navigation tree and its outline.
type PreviewResponse struct {
	Nodes   []navigation.PreviewNode `json:"nodes"`
	Outline string                   `json:"outline"`
}

// ResolveResponse carries a resolved media URL.
type ResolveResponse struct {
	Path  string `json:"path"`
	URL   string `json:"url"`
	Image bool   `json:"image"`
}

// PlanRequest carries the data of an entry.
type PlanRequest struct {
	Data contentedit.Value `json:"data"`
}

// PlanResponse carries the editing plan of an entry.
type PlanResponse struct {
	ContentType string                  `json:"content_type"`
	Fields      []contentedit.FieldPlan `json:"fields"`
}

// Classify picks the rendering strategy for a value
func (h *EditorHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if !decode(w, r, &req) {
		return
	}
	render.JSON(w, r, ClassifyResponse{
		Classification: contentedit.Classify(req.Value, req.Hint),
		Editor:         contentedit.EditorFor(req.Value, req.Hint),
	})
}

// ParseRaw validates raw-mode text. Invalid text is not a request error:
// the response reports it so the client can show the indicator.
func (h *EditorHandler) ParseRaw(w http.ResponseWriter, r *http.Request) {
	var req RawParseRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := contentedit.ParseString(req.Text)
	if err != nil {
		slog.Debug("Raw text rejected", "request_id", RequestID(r.Context()), "error", err)
		render.JSON(w, r, RawParseResponse{Valid: false, Error: err.Error()})
		return
	}
	render.JSON(w, r, RawParseResponse{Valid: true, Value: v})
}

// FormatRaw renders a value as indented raw-mode text
func (h *EditorHandler) FormatRaw(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if !decode(w, r, &req) {
		return
	}
	render.JSON(w, r, RawFormatResponse{Text: string(contentedit.MarshalIndent(req.Value))})
}

// ApplyStructured applies one structured editor action
func (h *EditorHandler) ApplyStructured(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := structured.Apply(req.Value, req.Action, h.structOpts...)
	h.respondApply(w, r, "structured", req.Action, res, err)
}

// StructuredRows lists the rows of the container at the request pointer
func (h *EditorHandler) StructuredRows(w http.ResponseWriter, r *http.Request) {
	var req RowsRequest
	if !decode(w, r, &req) {
		return
	}
	target, err := req.Value.At(req.Pointer)
	if err != nil {
		writeEditError(w, r, err)
		return
	}
	render.JSON(w, r, RowsResponse{
		Classification: contentedit.Classify(target, contentedit.HintNone),
		Rows:           structured.Rows(target, req.Pointer),
	})
}

// ApplyGallery applies one gallery action
func (h *EditorHandler) ApplyGallery(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := gallery.Apply(req.Value, req.Action)
	h.respondApply(w, r, "gallery", req.Action, res, err)
}

// GalleryTiles resolves the display tiles of a gallery
func (h *EditorHandler) GalleryTiles(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Value.IsNull() && !req.Value.IsArray() {
		writeEditError(w, r, contentedit.ErrNotArray)
		return
	}
	render.JSON(w, r, TilesResponse{Tiles: gallery.Tiles(req.Value, h.resolver)})
}

// ApplyNavigation applies one navigation action
func (h *EditorHandler) ApplyNavigation(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := navigation.Apply(req.Value, req.Action, h.navOpts)
	h.respondApply(w, r, "navigation", req.Action, res, err)
}

// NavigationPreview renders a navigation tree read-only
func (h *EditorHandler) NavigationPreview(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if !decode(w, r, &req) {
		return
	}
	nodes, err := navigation.Preview(req.Value)
	if err != nil {
		writeEditError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := navigation.RenderPreview(&buf, nodes); err != nil {
		slog.Error("Failed to render preview", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if nodes == nil {
		nodes = []navigation.PreviewNode{}
	}
	render.JSON(w, r, PreviewResponse{Nodes: nodes, Outline: buf.String()})
}

// ResolveMedia turns a stored media location into a URL
func (h *EditorHandler) ResolveMedia(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Missing required 'path' parameter")
		return
	}
	url := path
	if h.resolver != nil {
		url = h.resolver.Resolve(path)
	}
	if url == "" {
		slog.Warn("Media path could not be resolved", "path", path)
		writeError(w, r, http.StatusUnprocessableEntity, "unresolvable", "Media path could not be resolved")
		return
	}
	render.JSON(w, r, ResolveResponse{Path: path, URL: url, Image: gallery.IsImage(url)})
}

// GetFields returns the field definitions of a content type
func (h *EditorHandler) GetFields(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "content_type")
	if h.fields == nil {
		writeEditError(w, r, contentedit.ErrContentTypeNotFound)
		return
	}
	defs, err := h.fields.FieldDefinitions(r.Context(), contentType)
	if err != nil {
		slog.Warn("Failed to get field definitions", "content_type", contentType, "error", err)
		writeEditError(w, r, err)
		return
	}
	if defs == nil {
		defs = []contentedit.FieldDefinition{}
	}
	render.JSON(w, r, defs)
}

// PlanEntry classifies every field of an entry and picks its editor. An
// unknown content type plans from the data alone.
func (h *EditorHandler) PlanEntry(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "content_type")
	var req PlanRequest
	if !decode(w, r, &req) {
		return
	}

	var defs []contentedit.FieldDefinition
	if h.fields != nil {
		var err error
		defs, err = h.fields.FieldDefinitions(r.Context(), contentType)
		switch {
		case errors.Is(err, contentedit.ErrContentTypeNotFound):
			slog.Debug("No field definitions, planning from data", "content_type", contentType)
		case err != nil:
			slog.Error("Failed to get field definitions", "content_type", contentType, "error", err)
			writeEditError(w, r, err)
			return
		}
	}

	plans, err := contentedit.Plan(req.Data, defs)
	if err != nil {
		writeEditError(w, r, err)
		return
	}
	render.JSON(w, r, PlanResponse{ContentType: contentType, Fields: plans})
}

func (h *EditorHandler) respondApply(w http.ResponseWriter, r *http.Request, editor string, a contentedit.Action, res contentedit.Result, err error) {
	if err != nil {
		slog.Warn("Edit rejected", "request_id", RequestID(r.Context()), "editor", editor, "op", a.Op, "error", err)
		writeEditError(w, r, err)
		return
	}
	slog.Debug("Edit applied", "request_id", RequestID(r.Context()), "editor", editor, "op", a.Op, "changed", res.Changed)
	render.JSON(w, r, ApplyResponse{Value: res.Value, Changed: res.Changed})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request_too_large", err.Error())
			return false
		}
		slog.Error("Failed to decode request", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

// writeEditError maps editor errors onto HTTP statuses.
func writeEditError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contentedit.ErrContentTypeNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, contentedit.ErrUnknownOp),
		errors.Is(err, contentedit.ErrInvalidPointer),
		errors.Is(err, contentedit.ErrInvalidJSON):
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, contentedit.ErrNotArray),
		errors.Is(err, contentedit.ErrNotObject),
		errors.Is(err, contentedit.ErrNotScalar),
		errors.Is(err, contentedit.ErrIndexOutOfRange),
		errors.Is(err, contentedit.ErrKeyNotFound),
		errors.Is(err, contentedit.ErrMaxDepth),
		errors.Is(err, contentedit.ErrChildrenDisabled),
		errors.Is(err, gallery.ErrMissingMedia):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_edit", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
