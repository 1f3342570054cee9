package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/entities"
	newserrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/news/errors"
)

// Author is the profile data joined into news posts
type Author struct {
	Nickname string
	Avatar   string
}

// AuthorLookup resolves the profile of a post author
type AuthorLookup func(ctx context.Context, userID string) (Author, bool)

// Repository implements deps.NewsRepository using in-memory storage
type Repository struct {
	mu      sync.RWMutex
	nextID  uint
	posts   map[uint]*entities.NewsPost
	authors map[string]Author
	lookup  AuthorLookup
	now     func() time.Time
}

// NewRepository creates a new in-memory news repository
func NewRepository() *Repository {
	return &Repository{
		nextID:  1,
		posts:   make(map[uint]*entities.NewsPost),
		authors: make(map[string]Author),
		now:     time.Now,
	}
}

var _ deps.NewsRepository = (*Repository)(nil)

// SetAuthor registers profile data joined into posts by author_id
func (r *Repository) SetAuthor(userID string, author Author) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors[userID] = author
}

// WithAuthors joins posts with profiles resolved by lookup. Authors
// registered through SetAuthor take precedence.
func (r *Repository) WithAuthors(lookup AuthorLookup) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookup = lookup
	return r
}

func (r *Repository) join(ctx context.Context, post *entities.NewsPost) entities.NewsPost {
	out := *post
	if post.AuthorID == "" {
		return out
	}

	a, ok := r.authors[post.AuthorID]
	if !ok && r.lookup != nil {
		a, ok = r.lookup(ctx, post.AuthorID)
	}
	if ok {
		out.Nickname = a.Nickname
		out.Avatar = a.Avatar
	}
	return out
}

// List returns all posts newest first
func (r *Repository) List(ctx context.Context) ([]entities.NewsPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]entities.NewsPost, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, r.join(ctx, post))
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

// GetByID retrieves a news post by ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.NewsPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, newserrors.ErrNewsNotFound
	}

	found := r.join(ctx, post)
	return &found, nil
}

// Create stores a post and assigns ID and created_at
func (r *Repository) Create(ctx context.Context, post *entities.NewsPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = r.now().UTC()
	}

	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

// Delete removes a news post by ID
func (r *Repository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return newserrors.ErrNewsNotFound
	}

	delete(r.posts, id)
	return nil
}
