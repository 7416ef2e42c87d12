package social

import "time"

// Reaction kinds.
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionLaugh = "laugh"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

var ReactionKinds = []string{ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad, ReactionAngry}

// Post content kinds.
const (
	PostText     = "texto"
	PostImage    = "imagen"
	PostDocument = "documento"
	PostLink     = "enlace"
)

// UserInfo is the author summary the backend embeds on posts and comments.
type UserInfo struct {
	ID       string `json:"id_user"`
	Name     string `json:"nombre"`
	LastName string `json:"apellido,omitempty"`
	Avatar   string `json:"avatar_url,omitempty"`
}

// Media is one attachment on a post.
type Media struct {
	ID   string `json:"id_media,omitempty"`
	URL  string `json:"url"`
	Kind string `json:"tipo"` // imagen | video | documento | audio
}

type Post struct {
	ID          string    `json:"id_publicacion"`
	AuthorID    string    `json:"id_user"`
	Content     string    `json:"contenido"`
	Kind        string    `json:"tipo"`
	CreatedAt   time.Time `json:"fecha_creacion"`
	Author      *UserInfo `json:"usuario,omitempty"`
	Media       []Media   `json:"media,omitempty"`
	Comments    int       `json:"comentarios_count"`
	Reactions   int       `json:"reacciones_count"`
	MyReactions []string  `json:"mis_reacciones,omitempty"`
}

type Comment struct {
	ID        string    `json:"id_comentario"`
	PostID    string    `json:"id_publicacion"`
	AuthorID  string    `json:"id_user"`
	Content   string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha_creacion"`
	Author    *UserInfo `json:"usuario,omitempty"`
}

type Reaction struct {
	ID        string    `json:"id_reaccion"`
	PostID    string    `json:"id_publicacion,omitempty"`
	AuthorID  string    `json:"id_user"`
	Kind      string    `json:"tipo_reac"`
	CreatedAt time.Time `json:"fecha_creacion_reac"`
}

// Friend is one accepted friendship relation of the session user.
type Friend struct {
	RelationID string    `json:"id_relacion"`
	User       UserInfo  `json:"usuario"`
	Since      time.Time `json:"fecha_amistad,omitempty"`
}

// FriendRequest is a pending friendship request, sent or received.
type FriendRequest struct {
	RelationID string    `json:"id_relacion"`
	From       UserInfo  `json:"emisor"`
	To         UserInfo  `json:"receptor"`
	Status     string    `json:"estado"` // pendiente | aceptada | rechazada
	SentAt     time.Time `json:"fecha_solicitud,omitempty"`
}

// Upload is one file selected for attachment, ready to be posted to the
// upload collaborator.
type Upload struct {
	Name        string
	ContentType string
	Content     []byte
}

// MediaKind maps a MIME type to the backend's media kind strings.
func MediaKind(contentType string) string {
	switch {
	case len(contentType) >= 6 && contentType[:6] == "image/":
		return "imagen"
	case len(contentType) >= 6 && contentType[:6] == "video/":
		return "video"
	case len(contentType) >= 6 && contentType[:6] == "audio/":
		return "audio"
	default:
		return "documento"
	}
}
