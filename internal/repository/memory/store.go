package memory

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"bookledger/internal/model"
	"bookledger/internal/repository"
)

// Store keeps the three collections in process memory, in insertion order.
// It is safe for concurrent use; contents are lost when the process exits.
// Stored strings are cloned, so callers may pass views of reused buffers.
type Store struct {
	mu      sync.RWMutex
	books   []model.Book
	lenders []model.Lender
	issued  []model.IssuedRecord
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// PingContext always succeeds unless ctx is done.
func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}

// Books returns the books collection.
func (s *Store) Books() repository.BookRepository { return bookRepo{s} }

// Lenders returns the lenders collection.
func (s *Store) Lenders() repository.LenderRepository { return lenderRepo{s} }

// Issues returns the issued_books collection.
func (s *Store) Issues() repository.IssueRepository { return issueRepo{s} }

type bookRepo struct{ s *Store }

func (r bookRepo) Create(_ context.Context, b model.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.books {
		if existing.Title == b.Title {
			return repository.ErrAlreadyExists
		}
	}
	r.s.books = append(r.s.books, model.Book{Title: strings.Clone(b.Title)})
	return nil
}

func (r bookRepo) FindByTitle(_ context.Context, title string) (*model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.books {
		if b.Title == title {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r bookRepo) List(_ context.Context) ([]model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]model.Book(nil), r.s.books...), nil
}

type lenderRepo struct{ s *Store }

func (r lenderRepo) Create(_ context.Context, l model.Lender) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.lenders {
		if existing.ID == l.ID {
			return repository.ErrAlreadyExists
		}
	}
	r.s.lenders = append(r.s.lenders, model.Lender{Name: strings.Clone(l.Name), ID: strings.Clone(l.ID)})
	return nil
}

func (r lenderRepo) FindByName(_ context.Context, name string) (*model.Lender, error) {
	return r.find(func(l model.Lender) bool { return l.Name == name })
}

func (r lenderRepo) FindByID(_ context.Context, id string) (*model.Lender, error) {
	return r.find(func(l model.Lender) bool { return l.ID == id })
}

func (r lenderRepo) find(match func(model.Lender) bool) (*model.Lender, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.lenders {
		if match(l) {
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r lenderRepo) List(_ context.Context) ([]model.Lender, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]model.Lender(nil), r.s.lenders...), nil
}

type issueRepo struct{ s *Store }

func (r issueRepo) Create(_ context.Context, rec model.IssuedRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.BookTitle = strings.Clone(rec.BookTitle)
	rec.BorrowerName = strings.Clone(rec.BorrowerName)
	rec.BorrowerID = strings.Clone(rec.BorrowerID)
	rec.IssueDate = strings.Clone(rec.IssueDate)
	r.s.issued = append(r.s.issued, rec)
	return nil
}

func (r issueRepo) Search(_ context.Context, text string) ([]model.IssuedRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.IssuedRecord, 0, len(r.s.issued))
	for _, rec := range r.s.issued {
		if containsFold(rec.BookTitle, text) || containsFold(rec.BorrowerName, text) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// containsFold reports whether substr occurs in s under Unicode simple case
// folding, so Σ, σ and ς all match each other. Simple folding maps rune to
// rune, so a match spans exactly as many runes as substr has.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	n := utf8.RuneCountInString(substr)
	for i := range s {
		j := i
		for k := 0; k < n && j < len(s); k++ {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
		}
		if strings.EqualFold(s[i:j], substr) {
			return true
		}
	}
	return false
}
