package notes_box

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/notesbox/internal/telemetry/tracing"
	"github.com/2beens/notesbox/pkg"
	"github.com/2beens/notesbox/pkg/apierr"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const deletedMessage = "Note deleted successfully"

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=notes_box_test

type notesService interface {
	ListNotes(ctx context.Context) ([]Note, error)
	GetNote(ctx context.Context, id string) (*Note, error)
	CreateNote(ctx context.Context, input NoteInput) (*Note, error)
	UpdateNote(ctx context.Context, id string, input NoteInput) (*Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type Handler struct {
	service notesService
}

func NewHandler(service notesService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers /notes on the given router. Middlewares used on the
// returned subrouter (e.g. rate limiting) apply to the notes routes only.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router) *mux.Router {
	notesRouter := mainRouter.Path("/notes").Subrouter()
	notesRouter.HandleFunc("", handler.HandleGet).Methods("GET").Name("get-notes")
	notesRouter.HandleFunc("", handler.HandleCreate).Methods("POST").Name("new-note")
	notesRouter.HandleFunc("", handler.HandleUpdate).Methods("PUT").Name("update-note")
	notesRouter.HandleFunc("", handler.HandleDelete).Methods("DELETE").Name("remove-note")
	notesRouter.HandleFunc("", handler.HandleOptions).Methods("OPTIONS").Name("options-notes")
	return notesRouter
}

// HandleGet lists all notes, or returns a single one when ?id= is given.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		handler.handleList(w, r)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.get")
	defer span.End()

	note, err := handler.service.GetNote(ctx, id)
	if err != nil {
		handler.fail(w, span, "get note", err)
		return
	}

	pkg.WriteData(w, http.StatusOK, note)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.list")
	defer span.End()

	notes, err := handler.service.ListNotes(ctx)
	if err != nil {
		handler.fail(w, span, "list notes", err)
		return
	}

	if notes == nil {
		notes = []Note{}
	}

	pkg.WriteData(w, http.StatusOK, notes)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.create")
	defer span.End()

	input, err := decodeNoteInput(r)
	if err != nil {
		handler.fail(w, span, "create note", err)
		return
	}

	note, err := handler.service.CreateNote(ctx, input)
	if err != nil {
		handler.fail(w, span, "create note", err)
		return
	}

	log.Tracef("new note added: [%s] at %d", note.ID, note.CreatedAt)
	pkg.WriteData(w, http.StatusCreated, note)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.update")
	defer span.End()

	id := r.URL.Query().Get("id")
	if id == "" {
		handler.fail(w, span, "update note", apierr.NewValidationError("ID is required"))
		return
	}

	input, err := decodeNoteInput(r)
	if err != nil {
		handler.fail(w, span, "update note", err)
		return
	}

	note, err := handler.service.UpdateNote(ctx, id, input)
	if err != nil {
		handler.fail(w, span, "update note", err)
		return
	}

	pkg.WriteData(w, http.StatusOK, note)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.delete")
	defer span.End()

	id := r.URL.Query().Get("id")
	if id == "" {
		handler.fail(w, span, "delete note", apierr.NewValidationError("ID is required"))
		return
	}

	if err := handler.service.DeleteNote(ctx, id); err != nil {
		handler.fail(w, span, "delete note", err)
		return
	}

	pkg.WriteData(w, http.StatusOK, DeleteNoteResponse{Message: deletedMessage})
}

func (handler *Handler) HandleOptions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
	w.WriteHeader(http.StatusOK)
}

func (handler *Handler) fail(w http.ResponseWriter, span trace.Span, operation string, err error) {
	apiErr := apierr.From(err)
	if apiErr.Kind == apierr.KindInternal {
		span.SetStatus(codes.Error, err.Error())
	} else {
		log.Tracef("%s: %s", operation, err)
	}
	pkg.WriteError(w, apiErr)
}

func decodeNoteInput(r *http.Request) (NoteInput, error) {
	var input NoteInput
	if r.Body == nil {
		return input, apierr.NewValidationError("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("decode note input: %s", err)
		return input, apierr.NewValidationError("Invalid request body")
	}
	return input, nil
}
