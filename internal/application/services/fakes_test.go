package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"storage-api/internal/application/ports"
	"storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/position"
	"storage-api/internal/domain/user"
)

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

func sameParent(a, b *folder.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// memFileRepo keeps every row, deleted ones included, so tests can check
// that soft-deleted rows persist.
type memFileRepo struct {
	mu     sync.Mutex
	nextID file.ID
	rows   []*file.File
	err    error

	insertErr error
}

func (r *memFileRepo) FetchFiles(_ context.Context, userID user.ID, folderID *folder.ID) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out file.Files
	for i := len(r.rows) - 1; i >= 0; i-- {
		f := r.rows[i]
		if f.UserID == userID && f.DeletedAt == nil && sameParent(f.FolderID, folderID) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFileRepo) FetchFile(_ context.Context, userID user.ID, id file.ID) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, f := range r.rows {
		if f.ID == id && f.UserID == userID && f.DeletedAt == nil {
			return f, nil
		}
	}
	return nil, nil
}

func (r *memFileRepo) usage(userID user.ID) file.Usage {
	var u file.Usage
	for _, f := range r.rows {
		if f.UserID == userID && f.DeletedAt == nil {
			u.UsedBytes += f.SizeBytes
			u.FileCount++
		}
	}
	return u
}

func (r *memFileRepo) FetchUsage(_ context.Context, userID user.ID) (file.Usage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return file.Usage{}, r.err
	}
	return r.usage(userID), nil
}

func (r *memFileRepo) InsertWithinQuota(_ context.Context, req file.File, ceiling int64) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if r.usage(req.UserID).UsedBytes+req.SizeBytes > ceiling {
		return nil, file.ErrQuotaExceeded
	}
	r.nextID++
	req.ID = r.nextID
	req.CreatedAt = time.Now()
	rec := req
	r.rows = append(r.rows, &rec)
	return &rec, nil
}

func (r *memFileRepo) SoftDeleteFile(_ context.Context, userID user.ID, id file.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for _, f := range r.rows {
		if f.ID == id && f.UserID == userID && f.DeletedAt == nil {
			now := time.Now()
			f.DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type memFolderRepo struct {
	mu     sync.Mutex
	nextID folder.ID
	rows   []*folder.Folder
}

func (r *memFolderRepo) FetchFolders(_ context.Context, userID user.ID, parentID *folder.ID) (folder.Folders, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out folder.Folders
	for _, f := range r.rows {
		if f.UserID == userID && f.DeletedAt == nil && sameParent(f.ParentID, parentID) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memFolderRepo) FetchFolder(_ context.Context, userID user.ID, id folder.ID) (*folder.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.ID == id && f.UserID == userID && f.DeletedAt == nil {
			return f, nil
		}
	}
	return nil, nil
}

func (r *memFolderRepo) NameExists(_ context.Context, userID user.ID, parentID *folder.ID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.UserID == userID && f.DeletedAt == nil && f.Name == name && sameParent(f.ParentID, parentID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFolderRepo) CreateFolder(_ context.Context, req folder.Folder) (*folder.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	req.ID = r.nextID
	req.CreatedAt = time.Now()
	rec := req
	r.rows = append(r.rows, &rec)
	return &rec, nil
}

func (r *memFolderRepo) SoftDeleteFolder(_ context.Context, userID user.ID, id folder.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.ID == id && f.UserID == userID && f.DeletedAt == nil {
			now := time.Now()
			f.DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type memBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	openErr   error
	deleteErr error
	puts      int
	deletes   []string
}

func newMemBlobStore() *memBlobStore { return &memBlobStore{objects: map[string][]byte{}} }

func (s *memBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (ports.Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.putErr != nil {
		return ports.Blob{}, s.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return ports.Blob{}, err
	}
	s.objects[key] = b
	return ports.Blob{Locator: key, Size: int64(len(b))}, nil
}

func (s *memBlobStore) Open(_ context.Context, locator string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	b, ok := s.objects[locator]
	if !ok {
		return nil, errors.New("no such blob")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memBlobStore) Delete(_ context.Context, locator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, locator)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, locator)
	return nil
}

type memQueue struct {
	mu    sync.Mutex
	items []file.BlobDeletion
	err   error
}

func (q *memQueue) Enqueue(_ context.Context, d file.BlobDeletion) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.items = append(q.items, d)
	return nil
}

type memPositionRepo struct {
	nextID position.ID
	rows   map[position.ID]*position.Position
}

func newMemPositionRepo() *memPositionRepo {
	return &memPositionRepo{rows: map[position.ID]*position.Position{}}
}

func (r *memPositionRepo) codeTaken(code string, except position.ID) bool {
	for id, p := range r.rows {
		if p.Code == code && id != except {
			return true
		}
	}
	return false
}

func (r *memPositionRepo) FetchPositions(context.Context) (position.Positions, error) {
	var out position.Positions
	for _, p := range r.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPositionRepo) FetchPositionByID(_ context.Context, id position.ID) (*position.Position, error) {
	return r.rows[id], nil
}

func (r *memPositionRepo) CreatePosition(_ context.Context, req position.Position) (*position.Position, error) {
	if r.codeTaken(req.Code, 0) {
		return nil, position.ErrCodeTaken
	}
	r.nextID++
	req.ID = r.nextID
	r.rows[req.ID] = &req
	return &req, nil
}

func (r *memPositionRepo) UpdatePosition(_ context.Context, id position.ID, patch position.Patch) (*position.Position, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	if patch.Code != nil {
		if r.codeTaken(*patch.Code, id) {
			return nil, position.ErrCodeTaken
		}
		p.Code = *patch.Code
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	return p, nil
}

func (r *memPositionRepo) DeletePosition(_ context.Context, id position.ID) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}
