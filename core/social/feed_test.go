package social

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

// fakeGateway is an in-process Gateway with per-call hooks.
type fakeGateway struct {
	mu        sync.Mutex
	posts     []Post
	friends   []Friend
	feedHook  func() // runs inside Feed() before returning, for ordering tests
	feedErr   error
	createErr error
	deleteErr error
	reactErr  error
	reactions int
	uploaded  [][]Upload
	uploadErr error

	friendRequestIDs []string
}

func (g *fakeGateway) Feed(ctx context.Context, skip, limit int) ([]Post, error) {
	if g.feedHook != nil {
		g.feedHook()
	}
	if g.feedErr != nil {
		return nil, g.feedErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Post, len(g.posts))
	copy(out, g.posts)
	return out, nil
}

func (g *fakeGateway) CreatePost(ctx context.Context, data CreatePost) (Post, error) {
	if g.createErr != nil {
		return Post{}, g.createErr
	}
	return Post{ID: "p-new", Content: data.Content, Kind: data.Kind, CreatedAt: time.Now()}, nil
}

func (g *fakeGateway) UpdatePost(ctx context.Context, id string, data UpdatePost) (Post, error) {
	return Post{ID: id, Content: data.Content}, nil
}

func (g *fakeGateway) DeletePost(ctx context.Context, id string) error { return g.deleteErr }

func (g *fakeGateway) CreateReaction(ctx context.Context, postID, kind string) (Reaction, error) {
	if g.reactErr != nil {
		return Reaction{}, g.reactErr
	}
	g.mu.Lock()
	g.reactions++
	g.mu.Unlock()
	return Reaction{ID: "r-1", PostID: postID, Kind: kind}, nil
}

func (g *fakeGateway) Comments(ctx context.Context, postID string) ([]Comment, error) {
	return nil, nil
}

func (g *fakeGateway) CreateComment(ctx context.Context, postID, content string) (Comment, error) {
	return Comment{ID: "c-1", PostID: postID, Content: content}, nil
}

func (g *fakeGateway) Friends(ctx context.Context) ([]Friend, error) { return g.friends, nil }

func (g *fakeGateway) FriendRequests(ctx context.Context) ([]FriendRequest, error) { return nil, nil }

func (g *fakeGateway) SendFriendRequest(ctx context.Context, userID string) (FriendRequest, error) {
	g.friendRequestIDs = append(g.friendRequestIDs, userID)
	return FriendRequest{RelationID: "rel-new", Status: "pendiente"}, nil
}

func (g *fakeGateway) RespondFriendRequest(ctx context.Context, relationID, status string) error {
	return nil
}

func (g *fakeGateway) UploadFiles(ctx context.Context, files []Upload) ([]string, error) {
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	g.uploaded = append(g.uploaded, files)
	urls := make([]string, len(files))
	for i := range files {
		urls[i] = "/media/" + files[i].Name
	}
	return urls, nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setupFeed(t *testing.T, gw *fakeGateway) *Feed {
	t.Helper()
	sess := session.TestSession(session.User{ID: "u-1", Name: "Ana", Role: session.RoleStudent})
	return NewFeed(gw, sess, core.TestConfig(), nopLogger{}, core.Validate)
}

func somePosts() []Post {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Post{
		{ID: "p-1", AuthorID: "u-2", Content: "hola", CreatedAt: base},
		{ID: "p-2", AuthorID: "u-3", Content: "[EVENTO] Feria\ndetalles", CreatedAt: base.Add(time.Hour)},
		{ID: "p-3", AuthorID: "u-2", Content: "¿apuntes?", CreatedAt: base.Add(2 * time.Hour), Comments: 2, Reactions: 5},
	}
}

func TestFeedTabFiltering(t *testing.T) {
	gw := &fakeGateway{posts: somePosts(), friends: []Friend{{User: UserInfo{ID: "u-2"}}}}
	feed := setupFeed(t, gw)
	ctx := context.Background()
	feed.Load(ctx)

	// recent: events excluded, newest first
	visible := feed.Visible()
	if assert.Len(t, visible, 2) {
		assert.Equal(t, "p-3", visible[0].ID)
		assert.Equal(t, "p-1", visible[1].ID)
	}

	feed.SetTab(ctx, TabEvents)
	visible = feed.Visible()
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "p-2", visible[0].ID)
	}

	feed.SetTab(ctx, TabPopular)
	visible = feed.Visible()
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "p-3", visible[0].ID)
	}
	feed.SetPopularSubTab(SubTabComments)
	assert.Len(t, feed.Visible(), 1)

	feed.SetTab(ctx, TabFriends)
	visible = feed.Visible()
	assert.Len(t, visible, 2) // both u-2 posts

	assert.NotEmpty(t, feed.EmptyMessage())
}

// A slow response from an old load must not overwrite the newer one.
func TestFeedStaleLoadDiscarded(t *testing.T) {
	gw := &fakeGateway{posts: somePosts()}
	feed := setupFeed(t, gw)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	gw.feedHook = func() {
		close(started)
		<-release
	}

	done := make(chan struct{})
	go func() {
		feed.Load(ctx) // slow load, will finish last
		close(done)
	}()
	<-started

	gw.feedHook = nil
	gw.mu.Lock()
	gw.posts = []Post{{ID: "p-fresh", Content: "nuevo", CreatedAt: time.Now()}}
	gw.mu.Unlock()
	feed.Load(ctx) // newer load completes first

	close(release)
	<-done

	visible := feed.Visible()
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "p-fresh", visible[0].ID)
	}
}

func TestFeedCreateEventMarker(t *testing.T) {
	gw := &fakeGateway{}
	feed := setupFeed(t, gw)

	post, err := feed.Create(context.Background(), NewPost{Content: "Feria de proyectos", IsEvent: true})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	assert.True(t, IsEvent(post))
	assert.Equal(t, "Feria de proyectos", EventTitle(post))
	// author back-filled from the session
	if assert.NotNil(t, post.Author) {
		assert.Equal(t, "u-1", post.Author.ID)
	}
	// prepended
	assert.Equal(t, post.ID, feed.Posts()[0].ID)
}

func TestFeedCreateBlockedOnUploadFailure(t *testing.T) {
	gw := &fakeGateway{uploadErr: assert.AnError}
	feed := setupFeed(t, gw)

	_, err := feed.Create(context.Background(), NewPost{
		Content: "con foto",
		Files:   []Upload{{Name: "foto.png", ContentType: "image/png"}},
	})
	assert.Error(t, err)
	assert.Empty(t, feed.Posts())
}

func TestFeedCreateValidation(t *testing.T) {
	feed := setupFeed(t, &fakeGateway{})
	_, err := feed.Create(context.Background(), NewPost{Content: "   "})
	assert.Error(t, err)
}

func TestFeedDeleteConfirmGate(t *testing.T) {
	gw := &fakeGateway{posts: somePosts()}
	feed := setupFeed(t, gw)
	ctx := context.Background()
	feed.Load(ctx)

	feed.RequestDelete("p-1")
	assert.Equal(t, "p-1", feed.PendingDelete())
	feed.CancelDelete()
	assert.Empty(t, feed.PendingDelete())
	assert.Len(t, feed.Posts(), 3) // nothing deleted without confirmation

	feed.RequestDelete("p-1")
	if err := feed.ConfirmDelete(ctx); err != nil {
		t.Fatalf("ConfirmDelete() failed: %v", err)
	}
	assert.Len(t, feed.Posts(), 2)
	assert.Empty(t, feed.PendingDelete())
}

func TestFeedReactOncePerPost(t *testing.T) {
	gw := &fakeGateway{posts: somePosts()}
	feed := setupFeed(t, gw)
	ctx := context.Background()
	feed.Load(ctx)

	if err := feed.React(ctx, "p-1", ReactionLike); err != nil {
		t.Fatalf("React() failed: %v", err)
	}
	// second reaction on the same post is a local no-op
	if err := feed.React(ctx, "p-1", ReactionLove); err != nil {
		t.Fatalf("React() failed: %v", err)
	}
	assert.Equal(t, 1, gw.reactions)

	for _, p := range feed.Posts() {
		if p.ID == "p-1" {
			assert.Equal(t, 1, p.Reactions)
		}
	}
}

func TestFeedOnCommentAdded(t *testing.T) {
	gw := &fakeGateway{posts: somePosts()}
	feed := setupFeed(t, gw)
	feed.Load(context.Background())

	feed.OnCommentAdded("p-3")
	for _, p := range feed.Posts() {
		if p.ID == "p-3" {
			assert.Equal(t, 3, p.Comments)
		}
	}
}

func TestFeedEditReappliesMarker(t *testing.T) {
	gw := &fakeGateway{posts: somePosts()}
	feed := setupFeed(t, gw)
	ctx := context.Background()
	feed.Load(ctx)

	feed.StartEdit("p-2")
	_, content := feed.Editing()
	assert.Equal(t, "Feria\ndetalles", content) // marker hidden while editing

	feed.SetEditContent("Feria actualizada")
	if err := feed.SubmitEdit(ctx); err != nil {
		t.Fatalf("SubmitEdit() failed: %v", err)
	}
	for _, p := range feed.Posts() {
		if p.ID == "p-2" {
			assert.True(t, IsEvent(p))
			assert.Equal(t, "Feria actualizada", EventTitle(p))
		}
	}
}

func TestFeedAddFriend(t *testing.T) {
	gw := &fakeGateway{
		posts:   somePosts(),
		friends: []Friend{{RelationID: "rel-1", User: UserInfo{ID: "u-2", Name: "Luis"}}},
	}
	feed := setupFeed(t, gw)
	ctx := context.Background()
	feed.SetTab(ctx, TabFriends) // loads the friends-id set

	// self and existing friends are refused before any call
	assert.Error(t, feed.AddFriend(ctx, "u-1"))
	assert.Error(t, feed.AddFriend(ctx, "u-2"))
	assert.Empty(t, gw.friendRequestIDs)

	if err := feed.AddFriend(ctx, "u-3"); err != nil {
		t.Fatalf("AddFriend() failed: %v", err)
	}
	assert.Equal(t, []string{"u-3"}, gw.friendRequestIDs)
}
