package notes_box

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/notesbox/internal/store"
	"github.com/2beens/notesbox/internal/telemetry/metrics"
	"github.com/2beens/notesbox/internal/telemetry/tracing"
	"github.com/2beens/notesbox/pkg/apierr"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const noteNotFoundMessage = "Note not found"

var errMalformedNote = errors.New("malformed note record")

// Service implements note CRUD on top of a key-value store. Notes are
// stored as JSON under their id. Check-then-write sequences (update,
// delete) are not atomic; concurrent writers to one id race with
// last-write-wins semantics.
type Service struct {
	store         store.Store
	metrics       *metrics.Manager
	enforceExpiry bool

	now   func() time.Time
	newID func() string
}

func NewService(s store.Store, metricsManager *metrics.Manager, enforceExpiry bool) *Service {
	return &Service{
		store:         s,
		metrics:       metricsManager,
		enforceExpiry: enforceExpiry,
		now:           time.Now,
		newID: func() string {
			return uuid.NewString()
		},
	}
}

// ListNotes returns every note that could be loaded, in store order.
// Records that are missing by the time they are read, or that do not parse,
// are left out. Keys that are not note ids are ignored.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesService.list")
	defer span.End()

	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list note keys: %w", err)
	}

	notes := make([]Note, 0, len(keys))
	for _, key := range keys {
		if _, err := ValidateID(key); err != nil {
			continue
		}

		note, err := s.load(ctx, key)
		if err != nil {
			if apierr.IsKind(err, apierr.KindNotFound) {
				// deleted or expired after the listing
				log.Debugf("list notes: note [%s] gone", key)
				continue
			}
			log.Warnf("list notes: skipping note [%s]: %s", key, err)
			if s.metrics != nil {
				s.metrics.CounterNotesSkipped.Inc()
			}
			continue
		}
		notes = append(notes, *note)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("notes.count", len(notes)))
	return notes, nil
}

func (s *Service) GetNote(ctx context.Context, id string) (*Note, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesService.get")
	defer span.End()

	id, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("note.id", id))

	return s.load(ctx, id)
}

func (s *Service) CreateNote(ctx context.Context, input NoteInput) (*Note, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesService.create")
	defer span.End()

	content, err := ValidateContent(input.Content)
	if err != nil {
		return nil, err
	}
	expiresIn := ExpiresNever
	if input.ExpiresIn != nil {
		if expiresIn, err = ValidateExpiresIn(*input.ExpiresIn); err != nil {
			return nil, err
		}
	}

	now := s.now().UnixMilli()
	note := &Note{
		ID:        s.newID(),
		Content:   content,
		IsPublic:  input.IsPublic != nil && *input.IsPublic,
		ExpiresIn: expiresIn,
		CreatedAt: now,
		UpdatedAt: now,
	}
	span.SetAttributes(attribute.String("note.id", note.ID))

	if err := s.save(ctx, note); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterNotesCreated.Inc()
	}
	log.Debugf("note created: %s", note.ID)

	return note, nil
}

// UpdateNote replaces the content and, when supplied, the visibility and
// expiration of an existing note. UpdatedAt always moves forward, even when
// the clock did not.
func (s *Service) UpdateNote(ctx context.Context, id string, input NoteInput) (*Note, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesService.update")
	defer span.End()

	id, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("note.id", id))

	content, err := ValidateContent(input.Content)
	if err != nil {
		return nil, err
	}
	var expiresIn *ExpiresIn
	if input.ExpiresIn != nil {
		e, err := ValidateExpiresIn(*input.ExpiresIn)
		if err != nil {
			return nil, err
		}
		expiresIn = &e
	}

	note, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Content = content
	if input.IsPublic != nil {
		note.IsPublic = *input.IsPublic
	}
	if expiresIn != nil {
		note.ExpiresIn = *expiresIn
	}

	updatedAt := s.now().UnixMilli()
	if updatedAt <= note.UpdatedAt {
		updatedAt = note.UpdatedAt + 1
	}
	note.UpdatedAt = updatedAt

	if err := s.save(ctx, note); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterNotesUpdated.Inc()
	}
	log.Debugf("note updated: %s", note.ID)

	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesService.delete")
	defer span.End()

	id, err := ValidateID(id)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("note.id", id))

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}

	if s.metrics != nil {
		s.metrics.CounterNotesDeleted.Inc()
	}
	log.Debugf("note deleted: %s", id)

	return nil
}

func (s *Service) load(ctx context.Context, id string) (*Note, error) {
	raw, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NewNotFoundError(noteNotFoundMessage)
		}
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}

	var note Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		return nil, fmt.Errorf("unmarshal note %s: %w", id, err)
	}
	// null and {} decode fine, but are not notes
	if note.ID == "" || strings.TrimSpace(note.Content) == "" {
		return nil, fmt.Errorf("unmarshal note %s: %w", id, errMalformedNote)
	}
	return &note, nil
}

func (s *Service) save(ctx context.Context, note *Note) error {
	noteJson, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("marshal note %s: %w", note.ID, err)
	}

	var ttl time.Duration
	if s.enforceExpiry {
		ttl = note.ExpiresIn.Duration()
	}

	if err := s.store.Put(ctx, note.ID, string(noteJson), ttl); err != nil {
		return fmt.Errorf("put note %s: %w", note.ID, err)
	}
	return nil
}
