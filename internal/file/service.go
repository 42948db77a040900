package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mediastore/service/internal/storage"
	"github.com/mediastore/service/internal/task"
)

// compensationTimeout bounds each compensating metadata delete.
const compensationTimeout = 10 * time.Second

// MetadataStore is the persistence surface the workflows need. Repository is
// the production implementation.
type MetadataStore interface {
	Insert(ctx context.Context, rec *FileRecord) error
	GetByID(ctx context.Context, id int64) (*FileRecord, error)
	GetByStorageKey(ctx context.Context, key string) (*FileRecord, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByStorageKey(ctx context.Context, key string) error
}

// Service orchestrates the upload, retrieval, and deletion workflows across
// the metadata store and the object store.
//
// Upload returns as soon as the metadata row is written; the object-store
// write runs on the background pool. When that write fails, the storage key
// is sent on an in-process compensation queue whose consumer deletes the
// orphaned metadata row best-effort. A fetch racing the background write may
// therefore observe ErrNotFound at the object-store layer even though
// metadata exists; callers needing strong read-after-write must poll.
type Service struct {
	store     MetadataStore
	objects   storage.ObjectStorage
	whitelist Whitelist
	pool      *task.Pool

	compensations chan string
	consumerDone  chan struct{}
	closeOnce     sync.Once
}

// NewService wires the workflow layer and starts the compensation consumer.
func NewService(store MetadataStore, objects storage.ObjectStorage, whitelist Whitelist, pool *task.Pool) *Service {
	s := &Service{
		store:         store,
		objects:       objects,
		whitelist:     whitelist,
		pool:          pool,
		compensations: make(chan string, 64),
		consumerDone:  make(chan struct{}),
	}
	go s.consumeCompensations()
	return s
}

// Upload validates and stores one uploaded file. The metadata row is inserted
// synchronously and the returned record carries the store-assigned ID; the
// object-store write is not awaited.
//
// declaredName may be empty, in which case the generated storage key stands in
// as the original name. size is a capacity hint from the transport layer; the
// byte count actually written is taken from the content itself.
func (s *Service) Upload(ctx context.Context, content io.Reader, declaredName string, size int64) (*FileRecord, error) {
	rec := NewFileRecord(declaredName)
	if !s.whitelist.Allowed(rec.Extension) {
		return nil, ErrUnsupportedFormat
	}

	if content == nil {
		return nil, ErrContentRead
	}
	data, err := readAll(content, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentRead, err)
	}

	if err := s.store.Insert(ctx, &rec); err != nil {
		return nil, err
	}

	key := rec.StorageKey
	if err := s.pool.Submit(func(jobCtx context.Context) {
		if err := s.objects.Put(jobCtx, key, bytes.NewReader(data), int64(len(data))); err != nil {
			log.Error("object write failed, scheduling compensation", "storageKey", key, "error", err)
			s.compensate(key)
			return
		}
		log.Info("object written", "storageKey", key, "bytes", len(data))
	}); err != nil {
		log.Error("could not queue object write, scheduling compensation", "storageKey", key, "error", err)
		s.compensate(key)
	}

	log.Info("saved file metadata", "id", rec.ID, "storageKey", rec.StorageKey, "originalName", rec.OriginalName)
	return &rec, nil
}

// FetchMetadata returns the record for id, or ErrNotFound.
func (s *Service) FetchMetadata(ctx context.Context, id int64) (*FileRecord, error) {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// FetchContent returns a reader over the stored bytes for id. A missing
// metadata row and a missing object both surface as ErrNotFound; the caller
// must close the reader.
func (s *Service) FetchContent(ctx context.Context, id int64) (io.ReadCloser, error) {
	rec, err := s.FetchMetadata(ctx, id)
	if err != nil {
		return nil, err
	}

	obj, err := s.objects.Get(ctx, rec.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch object content: %w", err)
	}
	return obj, nil
}

// DeleteByID removes the file's object and metadata. The operation is
// idempotent and best-effort: a missing record, a missing object, and store
// failures during cleanup are logged and swallowed. Only ErrAccessDenied is
// ever propagated.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	rec, err := s.FetchMetadata(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return err
		}
		log.Warn("delete: no file to remove", "id", id, "error", err)
		return nil
	}

	key := rec.StorageKey
	if err := s.pool.Submit(func(jobCtx context.Context) {
		if err := s.objects.Remove(jobCtx, key); err != nil {
			log.Error("object delete failed", "storageKey", key, "error", err)
			return
		}
		log.Info("object deleted", "storageKey", key)
	}); err != nil {
		log.Error("could not queue object delete", "storageKey", key, "error", err)
	}

	if err := s.store.DeleteByID(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		log.Error("metadata delete failed", "id", id, "error", err)
		return nil
	}

	log.Info("deleted file", "id", id)
	return nil
}

// Close stops the compensation consumer after its queue is drained. Close the
// background pool first so in-flight object writes can still schedule their
// compensations.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.compensations)
		<-s.consumerDone
	})
}

// compensate queues a best-effort metadata delete for an orphaned row. The
// queue is bounded; when it overflows the row is left behind and logged.
func (s *Service) compensate(storageKey string) {
	select {
	case s.compensations <- storageKey:
	default:
		log.Error("compensation queue full, metadata row may be orphaned", "storageKey", storageKey)
	}
}

// consumeCompensations deletes metadata rows whose object write failed.
// Failures here are swallowed: this is best-effort cleanup, not a transaction.
func (s *Service) consumeCompensations() {
	defer close(s.consumerDone)
	for key := range s.compensations {
		ctx, cancel := context.WithTimeout(context.Background(), compensationTimeout)
		if err := s.store.DeleteByStorageKey(ctx, key); err != nil {
			log.Error("failed to delete metadata after object write failure", "storageKey", key, "error", err)
		} else {
			log.Info("metadata deleted after object write failure", "storageKey", key)
		}
		cancel()
	}
}

// readAll buffers the upload so the background write does not depend on the
// request body staying open. size preallocates when the transport knows it.
func readAll(r io.Reader, size int64) ([]byte, error) {
	if size > 0 {
		buf := bytes.NewBuffer(make([]byte, 0, size))
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return io.ReadAll(r)
}
