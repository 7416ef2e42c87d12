package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

var _ social.Gateway = (*Store)(nil)

func (s *Store) Feed(ctx context.Context, skip, limit int) ([]social.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := sortedByTimeDesc(s.posts, func(p social.Post) time.Time { return p.CreatedAt })
	for i := range posts {
		posts[i].Comments = len(s.comments[posts[i].ID])
		posts[i].Reactions = s.reactionCount(posts[i].ID)
		posts[i].MyReactions = s.myReactions(posts[i].ID)
	}
	return paginate(posts, skip, limit), nil
}

func (s *Store) reactionCount(postID string) int {
	n := 0
	for _, r := range s.reactions {
		if r.PostID == postID {
			n++
		}
	}
	return n
}

func (s *Store) myReactions(postID string) []string {
	var kinds []string
	for _, r := range s.reactions {
		if r.PostID == postID && r.AuthorID == s.self.ID {
			kinds = append(kinds, r.Kind)
		}
	}
	return kinds
}

func (s *Store) CreatePost(ctx context.Context, data social.CreatePost) (social.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author := s.selfInfo()
	p := social.Post{
		ID:        uuid.NewString(),
		AuthorID:  s.self.ID,
		Content:   data.Content,
		Kind:      data.Kind,
		CreatedAt: nowFunc(),
		Author:    &author,
	}
	for _, u := range data.MediaURLs {
		p.Media = append(p.Media, social.Media{ID: uuid.NewString(), URL: u, Kind: "imagen"})
	}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, data social.UpdatePost) (social.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			if s.posts[i].AuthorID != s.self.ID {
				return social.Post{}, ErrForbidden
			}
			s.posts[i].Content = data.Content
			return s.posts[i], nil
		}
	}
	return social.Post{}, ErrNotFound
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			if s.posts[i].AuthorID != s.self.ID && !s.self.IsAdmin() {
				return ErrForbidden
			}
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			delete(s.comments, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) CreateReaction(ctx context.Context, postID, kind string) (social.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := social.Reaction{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  s.self.ID,
		Kind:      kind,
		CreatedAt: nowFunc(),
	}
	s.reactions = append(s.reactions, r)
	return r, nil
}

func (s *Store) Comments(ctx context.Context, postID string) ([]social.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]social.Comment, len(s.comments[postID]))
	copy(out, s.comments[postID])
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, postID, content string) (social.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author := s.selfInfo()
	cm := social.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  s.self.ID,
		Content:   content,
		CreatedAt: nowFunc(),
		Author:    &author,
	}
	s.comments[postID] = append(s.comments[postID], cm)
	return cm, nil
}

func (s *Store) Friends(ctx context.Context) ([]social.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]social.Friend, len(s.friends))
	copy(out, s.friends)
	return out, nil
}

func (s *Store) FriendRequests(ctx context.Context) ([]social.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]social.FriendRequest, len(s.requests))
	copy(out, s.requests)
	return out, nil
}

func (s *Store) SendFriendRequest(ctx context.Context, userID string) (social.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *session.User
	for _, acct := range s.accounts {
		if acct.user.ID == userID {
			target = &acct.user
			break
		}
	}
	if target == nil {
		return social.FriendRequest{}, ErrNotFound
	}
	for _, fr := range s.friends {
		if fr.User.ID == userID {
			return social.FriendRequest{}, ErrFriendshipDup
		}
	}
	for _, req := range s.requests {
		if req.Status == "pendiente" && (req.From.ID == userID || req.To.ID == userID) {
			return social.FriendRequest{}, ErrFriendshipDup
		}
	}

	req := social.FriendRequest{
		RelationID: uuid.NewString(),
		From:       s.selfInfo(),
		To:         social.UserInfo{ID: target.ID, Name: target.Name, LastName: target.LastName, Avatar: target.Avatar},
		Status:     "pendiente",
		SentAt:     nowFunc(),
	}
	s.requests = append(s.requests, req)
	return req, nil
}

func (s *Store) RespondFriendRequest(ctx context.Context, relationID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].RelationID == relationID {
			s.requests[i].Status = status
			if status == "aceptada" {
				s.friends = append(s.friends, social.Friend{
					RelationID: relationID,
					User:       s.requests[i].From,
					Since:      nowFunc(),
				})
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) UploadFiles(ctx context.Context, files []social.Upload) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u := fmt.Sprintf("/media/%s/%s", uuid.NewString(), f.Name)
		s.uploads = append(s.uploads, u)
		urls = append(urls, u)
	}
	return urls, nil
}
