package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

var _ social.Gateway = (*Client)(nil)

func (c *Client) Feed(ctx context.Context, skip, limit int) ([]social.Post, error) {
	var posts []social.Post
	if err := c.get(ctx, "/publicaciones", pageQuery(skip, limit), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, data social.CreatePost) (social.Post, error) {
	var p social.Post
	if err := c.post(ctx, "/publicaciones", data, &p); err != nil {
		return social.Post{}, err
	}
	return p, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, data social.UpdatePost) (social.Post, error) {
	var p social.Post
	if err := c.put(ctx, "/publicaciones/"+id, data, &p); err != nil {
		return social.Post{}, err
	}
	return p, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.delete(ctx, "/publicaciones/"+id)
}

func (c *Client) CreateReaction(ctx context.Context, postID, kind string) (social.Reaction, error) {
	payload := struct {
		PostID string `json:"id_publicacion"`
		Kind   string `json:"tipo_reac"`
	}{postID, kind}
	var r social.Reaction
	if err := c.post(ctx, "/reacciones", payload, &r); err != nil {
		return social.Reaction{}, err
	}
	return r, nil
}

func (c *Client) Comments(ctx context.Context, postID string) ([]social.Comment, error) {
	var comments []social.Comment
	if err := c.get(ctx, "/comentarios/publicacion/"+postID, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postID, content string) (social.Comment, error) {
	payload := struct {
		PostID  string `json:"id_publicacion"`
		Content string `json:"contenido"`
	}{postID, content}
	var cm social.Comment
	if err := c.post(ctx, "/comentarios", payload, &cm); err != nil {
		return social.Comment{}, err
	}
	return cm, nil
}

func (c *Client) Friends(ctx context.Context) ([]social.Friend, error) {
	var friends []social.Friend
	if err := c.get(ctx, "/amigos/lista", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

func (c *Client) FriendRequests(ctx context.Context) ([]social.FriendRequest, error) {
	var reqs []social.FriendRequest
	if err := c.get(ctx, "/amigos/solicitudes", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *Client) SendFriendRequest(ctx context.Context, userID string) (social.FriendRequest, error) {
	q := url.Values{}
	q.Set("id_usuario_destino", userID)
	var req social.FriendRequest
	if err := c.post(ctx, "/amigos/solicitud?"+q.Encode(), nil, &req); err != nil {
		return social.FriendRequest{}, err
	}
	return req, nil
}

func (c *Client) RespondFriendRequest(ctx context.Context, relationID, status string) error {
	payload := struct {
		Status string `json:"estado"`
	}{status}
	return c.put(ctx, "/amigos/"+relationID, payload, nil)
}

type uploadResponse struct {
	Files []struct {
		URL string `json:"url"`
	} `json:"files"`
}

// UploadFiles sends attachments as one multipart request and returns the
// stored URLs in input order.
func (c *Client) UploadFiles(ctx context.Context, files []social.Upload) ([]string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, errors.Wrap(err, "building multipart body")
		}
		if _, err := io.Copy(part, bytes.NewReader(f.Content)); err != nil {
			return nil, errors.Wrap(err, "building multipart body")
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "building multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/files", buf)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(resp.Files))
	for _, f := range resp.Files {
		urls = append(urls, f.URL)
	}
	return urls, nil
}
