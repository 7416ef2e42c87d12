package social

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

// EventMarker flags a post as an event by prefixing its text content.
// The backend has no structured field for this; the convention is the wire
// format and every other module must go through IsEvent/EventTitle instead
// of touching the raw prefix.
const EventMarker = "[EVENTO]"

// Feed tabs and the popular sub-tabs.
const (
	TabRecent  = "recientes"
	TabPopular = "populares"
	TabFriends = "amigos"
	TabEvents  = "eventos"

	SubTabReactions = "reacciones"
	SubTabComments  = "comentarios"
)

// FeedTabs in display order.
var FeedTabs = []string{TabRecent, TabPopular, TabFriends, TabEvents}

// Empty-state messages, one per tab.
var emptyMessages = map[string]string{
	TabRecent:  "No hay publicaciones recientes",
	TabPopular: "No hay publicaciones populares",
	TabFriends: "No hay publicaciones de tus amigos",
	TabEvents:  "No hay eventos programados",
}

// Gateway is the slice of the remote gateway the feed depends on.
type Gateway interface {
	Feed(ctx context.Context, skip, limit int) ([]Post, error)
	CreatePost(ctx context.Context, data CreatePost) (Post, error)
	UpdatePost(ctx context.Context, id string, data UpdatePost) (Post, error)
	DeletePost(ctx context.Context, id string) error
	CreateReaction(ctx context.Context, postID, kind string) (Reaction, error)
	Comments(ctx context.Context, postID string) ([]Comment, error)
	CreateComment(ctx context.Context, postID, content string) (Comment, error)
	Friends(ctx context.Context) ([]Friend, error)
	FriendRequests(ctx context.Context) ([]FriendRequest, error)
	SendFriendRequest(ctx context.Context, userID string) (FriendRequest, error)
	RespondFriendRequest(ctx context.Context, relationID, status string) error
	UploadFiles(ctx context.Context, files []Upload) ([]string, error)
}

// CreatePost is the wire payload for POST /publicaciones.
type CreatePost struct {
	Content   string   `json:"contenido"`
	Kind      string   `json:"tipo"`
	MediaURLs []string `json:"media_urls,omitempty"`
}

// UpdatePost is the wire payload for PUT /publicaciones/{id}.
type UpdatePost struct {
	Content string `json:"contenido"`
}

// NewPost is the compose-form input.
type NewPost struct {
	Content string   `json:"contenido" validate:"required"`
	IsEvent bool     `json:"-"`
	Files   []Upload `json:"-"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Content = core.CleanString(np.Content)
	return validate.Struct(np)
}

// Feed owns the post list for the current view, the active tab filter and
// every mutation against it.
type Feed struct {
	gw       Gateway
	sess     *session.Session
	conf     *core.Config
	logger   core.Logger
	validate *validator.Validate

	mu            sync.Mutex
	posts         []Post
	tab           string
	popularSubTab string
	friendIDs     map[string]bool
	friendsLoaded bool
	reacted       map[string]bool // post ids the session user reacted to
	loadGen       int
	loadErr       string
	loading       bool

	openMenuID      string
	editingPostID   string
	editContent     string
	pendingDeleteID string

	Banner core.Banner
}

func NewFeed(gw Gateway, sess *session.Session, conf *core.Config, logger core.Logger, validate *validator.Validate) *Feed {
	return &Feed{
		gw:            gw,
		sess:          sess,
		conf:          conf,
		logger:        logger,
		validate:      validate,
		tab:           TabRecent,
		popularSubTab: SubTabReactions,
		reacted:       make(map[string]bool),
	}
}

// IsEvent reports whether a post carries the event marker.
func IsEvent(p Post) bool {
	return strings.HasPrefix(p.Content, EventMarker)
}

// EventTitle strips the event marker for display.
func EventTitle(p Post) string {
	return strings.TrimSpace(strings.TrimPrefix(p.Content, EventMarker))
}

// Load fetches one page of posts. A response that arrives after a newer
// Load started is discarded, so a stale fetch can never overwrite the
// current view. There is no automatic retry; the caller re-invokes via Retry.
func (f *Feed) Load(ctx context.Context) {
	f.mu.Lock()
	f.loadGen++
	gen := f.loadGen
	f.loading = true
	limit := f.conf.API.PageSize
	f.mu.Unlock()

	posts, err := f.gw.Feed(ctx, 0, limit)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.loadGen {
		return // a newer load owns the state now
	}
	f.loading = false
	if err != nil {
		f.loadErr = core.DisplayError(err, "Error al cargar publicaciones")
		f.logger.Error("loading feed", err, f.sess.User())
		f.Banner.ShowSticky(core.BannerError, f.loadErr)
		return
	}
	f.loadErr = ""
	f.Banner.Dismiss()
	f.posts = posts
}

// Retry re-runs the failed initial load.
func (f *Feed) Retry(ctx context.Context) { f.Load(ctx) }

func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Feed) LoadError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadErr
}

func (f *Feed) Tab() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tab
}

// SetTab switches the active tab. Switching to the friends tab triggers the
// one-off load of the friends-id set.
func (f *Feed) SetTab(ctx context.Context, tab string) {
	f.mu.Lock()
	f.tab = tab
	needFriends := tab == TabFriends && !f.friendsLoaded
	f.mu.Unlock()

	if needFriends {
		f.loadFriends(ctx)
	}
}

func (f *Feed) SetPopularSubTab(sub string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.popularSubTab = sub
}

func (f *Feed) loadFriends(ctx context.Context) {
	friends, err := f.gw.Friends(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// the friends tab just renders empty until a later switch retries
		f.logger.Warn("loading friends", err)
		return
	}
	f.friendIDs = make(map[string]bool, len(friends))
	for _, fr := range friends {
		f.friendIDs[fr.User.ID] = true
	}
	f.friendsLoaded = true
}

// AddFriend sends a friendship request to another user. Existing friends
// and the session user itself are refused locally.
func (f *Feed) AddFriend(ctx context.Context, userID string) error {
	if userID == f.sess.User().ID {
		return core.NewValidationError(nil, core.FieldError{Field: "id_usuario_destino", Error: "no puedes agregarte a ti mismo"})
	}
	f.mu.Lock()
	already := f.friendIDs[userID]
	f.mu.Unlock()
	if already {
		return core.NewValidationError(nil, core.FieldError{Field: "id_usuario_destino", Error: "ya son amigos"})
	}

	if _, err := f.gw.SendFriendRequest(ctx, userID); err != nil {
		f.Banner.Show(core.BannerError, core.DisplayError(err, "Error al enviar solicitud de amistad"), f.conf.BannerDelay)
		return err
	}
	f.Banner.Show(core.BannerSuccess, "Solicitud de amistad enviada", f.conf.BannerDelay)
	return nil
}

// Visible recomputes the filtered, sorted post list for the active tab.
// Pure with respect to the stored posts: the result is a fresh slice.
func (f *Feed) Visible() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Post, 0, len(f.posts))
	switch f.tab {
	case TabEvents:
		for _, p := range f.posts {
			if IsEvent(p) {
				out = append(out, p)
			}
		}
	case TabRecent:
		for _, p := range f.posts {
			if !IsEvent(p) {
				out = append(out, p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case TabPopular:
		byComments := f.popularSubTab == SubTabComments
		for _, p := range f.posts {
			if IsEvent(p) {
				continue
			}
			if byComments && p.Comments >= 1 {
				out = append(out, p)
			} else if !byComments && p.Reactions >= 1 {
				out = append(out, p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if byComments {
				return out[i].Comments > out[j].Comments
			}
			return out[i].Reactions > out[j].Reactions
		})
	case TabFriends:
		for _, p := range f.posts {
			if !IsEvent(p) && f.friendIDs[p.AuthorID] {
				out = append(out, p)
			}
		}
	}
	return out
}

// EmptyMessage is the tab-specific notice rendered when Visible is empty.
func (f *Feed) EmptyMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tab == TabPopular {
		return emptyMessages[TabPopular] + " por " + f.popularSubTab
	}
	return emptyMessages[f.tab]
}

// Create validates the compose form, uploads attachments first (creation is
// blocked on upload failure), encodes the event flag as the text marker, and
// prepends the created post. Author and media info are back-filled from the
// session when the backend omits them.
func (f *Feed) Create(ctx context.Context, np NewPost) (Post, error) {
	if err := np.Validate(f.validate); err != nil {
		return Post{}, err
	}

	var mediaURLs []string
	kind := PostText
	if len(np.Files) > 0 {
		urls, err := f.gw.UploadFiles(ctx, np.Files)
		if err != nil {
			msg := core.DisplayError(err, "Error al subir archivos")
			f.Banner.Show(core.BannerError, msg, f.conf.BannerDelay)
			return Post{}, errors.Wrap(err, "uploading attachments")
		}
		mediaURLs = urls
		kind = MediaKind(np.Files[0].ContentType)
	}

	content := np.Content
	if np.IsEvent {
		content = EventMarker + content
	}

	post, err := f.gw.CreatePost(ctx, CreatePost{Content: content, Kind: kind, MediaURLs: mediaURLs})
	if err != nil {
		f.Banner.Show(core.BannerError, core.DisplayError(err, "Error al crear publicación"), f.conf.BannerDelay)
		return Post{}, err
	}

	usr := f.sess.User()
	if post.Author == nil {
		post.Author = &UserInfo{ID: usr.ID, Name: usr.Name, LastName: usr.LastName, Avatar: usr.Avatar}
	}
	if post.AuthorID == "" {
		post.AuthorID = usr.ID
	}
	if len(post.Media) == 0 && len(mediaURLs) > 0 {
		for _, u := range mediaURLs {
			post.Media = append(post.Media, Media{URL: u, Kind: kind})
		}
	}

	f.mu.Lock()
	f.posts = append([]Post{post}, f.posts...)
	f.mu.Unlock()
	return post, nil
}

// StartEdit opens in-place editing for a post card, seeding the edit buffer
// with the marker stripped.
func (f *Feed) StartEdit(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			f.editingPostID = id
			f.editContent = EventTitle(p)
			return
		}
	}
}

func (f *Feed) CancelEdit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editingPostID = ""
	f.editContent = ""
}

func (f *Feed) Editing() (id, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingPostID, f.editContent
}

func (f *Feed) SetEditContent(content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editContent = content
}

// SubmitEdit replaces the post's text, re-applying the event marker when the
// original had it. On failure the list is left unchanged.
func (f *Feed) SubmitEdit(ctx context.Context) error {
	f.mu.Lock()
	id := f.editingPostID
	content := core.CleanString(f.editContent)
	var wasEvent bool
	for _, p := range f.posts {
		if p.ID == id {
			wasEvent = IsEvent(p)
		}
	}
	f.mu.Unlock()

	if id == "" {
		return nil
	}
	if content == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "contenido", Error: "this field is required"})
	}
	if wasEvent {
		content = EventMarker + content
	}

	updated, err := f.gw.UpdatePost(ctx, id, UpdatePost{Content: content})
	if err != nil {
		f.Banner.Show(core.BannerError, core.DisplayError(err, "Error al editar publicación"), f.conf.BannerDelay)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Content = updated.Content
			if len(updated.Media) > 0 {
				f.posts[i].Media = updated.Media
			}
		}
	}
	f.editingPostID = ""
	f.editContent = ""
	return nil
}

// RequestDelete arms the confirmation modal; no request is issued until
// ConfirmDelete.
func (f *Feed) RequestDelete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingDeleteID = id
}

func (f *Feed) CancelDelete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingDeleteID = ""
}

func (f *Feed) PendingDelete() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pendingDeleteID
}

// ConfirmDelete removes the armed post. On failure the list is unchanged.
func (f *Feed) ConfirmDelete(ctx context.Context) error {
	f.mu.Lock()
	id := f.pendingDeleteID
	f.pendingDeleteID = ""
	f.mu.Unlock()
	if id == "" {
		return nil
	}

	if err := f.gw.DeletePost(ctx, id); err != nil {
		f.Banner.Show(core.BannerError, core.DisplayError(err, "Error al eliminar publicación"), f.conf.BannerDelay)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.posts = kept
	return nil
}

// React fires a reaction and bumps the local counter once the gateway
// accepts the call. Repeat reactions by the session user on the same post
// are dropped client-side; the backend stays the authority across sessions.
func (f *Feed) React(ctx context.Context, postID, kind string) error {
	f.mu.Lock()
	if f.reacted[postID] {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	if _, err := f.gw.CreateReaction(ctx, postID, kind); err != nil {
		f.Banner.Show(core.BannerError, core.DisplayError(err, "Error al reaccionar"), f.conf.BannerDelay)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.reacted[postID] = true
	for i := range f.posts {
		if f.posts[i].ID == postID {
			f.posts[i].Reactions++
		}
	}
	return nil
}

// OnCommentAdded bumps the comment counter for a post after the detail view
// successfully submits a comment. No refetch.
func (f *Feed) OnCommentAdded(postID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == postID {
			f.posts[i].Comments++
		}
	}
}

// OpenMenu/CloseMenu track which post card's overflow menu is open.
func (f *Feed) OpenMenu(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openMenuID = id
}

func (f *Feed) CloseMenu() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openMenuID = ""
}

func (f *Feed) OpenMenuID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.openMenuID
}

// Posts returns a copy of the raw post list (unfiltered).
func (f *Feed) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Post(nil), f.posts...)
}
