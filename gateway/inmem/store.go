// Package inmem is an in-memory rendition of the backend API. It backs the
// development stub server and the controller tests, so its behavior mirrors
// the real backend's: same envelopes, same two-step assignment rule, same
// capacity accounting.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

var nowFunc = time.Now // mockable

// Errors surfaced exactly like the backend's detail strings.
var (
	ErrBadCredentials  = errors.New("Credenciales inválidas")
	ErrNotFound        = errors.New("Recurso no encontrado")
	ErrForbidden       = errors.New("No autorizado")
	ErrRideFull        = errors.New("La ruta ya no tiene cupos disponibles")
	ErrStudentNoGroup  = errors.New("El estudiante no tiene grupo asignado")
	ErrDuplicateJoin   = errors.New("Ya existe una solicitud para esta ruta")
	ErrConversationDup = errors.New("Ya existe una conversación con este usuario")
	ErrFriendshipDup   = errors.New("Ya existe una solicitud de amistad con este usuario")
)

type account struct {
	user session.User
	hash []byte
}

// Store holds all state behind one mutex. Every method is safe for
// concurrent use.
type Store struct {
	secret []byte
	issuer string

	mu       sync.Mutex
	accounts map[string]*account // by email
	self     session.User        // authenticated caller

	posts     []social.Post
	comments  map[string][]social.Comment
	reactions []social.Reaction
	friends   []social.Friend
	requests  []social.FriendRequest
	uploads   []string

	subjects    []academic.Subject
	groups      []academic.Group
	schedules   []academic.ScheduleSlot
	grades      []academic.Grade
	students    []academic.Student
	teachers    []academic.Teacher
	assignments []academic.Assignment

	conversations []messaging.Conversation
	messages      map[string][]messaging.Message

	rides []carpool.Ride
	joins []carpool.JoinRequest

	notifications []notify.Notification
}

func New(secret []byte, issuer string) *Store {
	return &Store{
		secret:   secret,
		issuer:   issuer,
		accounts: make(map[string]*account),
		comments: make(map[string][]social.Comment),
		messages: make(map[string][]messaging.Message),
	}
}

// RegisterUser creates a login. The password is stored hashed.
func (s *Store) RegisterUser(usr session.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}
	s.accounts[usr.Email] = &account{user: usr, hash: hash}
	return nil
}

// Lookup returns the registered user for an email.
func (s *Store) Lookup(email string) (session.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[email]
	if !ok {
		return session.User{}, false
	}
	return acct.user, true
}

// Authenticate checks the password and issues a signed token.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, error) {
	s.mu.Lock()
	acct, ok := s.accounts[username]
	s.mu.Unlock()
	if !ok {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	tok, err := session.SignToken(session.NewClaims(acct.user, s.issuer, 24*time.Hour), s.secret)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.self = acct.user
	s.mu.Unlock()
	return tok, nil
}

func (s *Store) Me(ctx context.Context) (session.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.self.ID == "" {
		return session.User{}, ErrForbidden
	}
	return s.self, nil
}

// SetToken adopts the identity carried by a token issued by this store.
func (s *Store) SetToken(token string) {
	if token == "" {
		s.mu.Lock()
		s.self = session.User{}
		s.mu.Unlock()
		return
	}
	claims, err := session.ParseClaims(token, s.secret)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.ID == claims.Subject {
			s.self = acct.user
			return
		}
	}
}

// SetSelf pins the caller identity directly; test hook.
func (s *Store) SetSelf(usr session.User) {
	s.mu.Lock()
	s.self = usr
	s.mu.Unlock()
}

func (s *Store) selfInfo() social.UserInfo {
	return social.UserInfo{ID: s.self.ID, Name: s.self.Name, LastName: s.self.LastName, Avatar: s.self.Avatar}
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func sortedByTimeDesc[T any](items []T, at func(T) time.Time) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return at(out[i]).After(at(out[j])) })
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
