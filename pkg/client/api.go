package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	entityHero     = "hero"
	entityAbout    = "about"
	entityProjects = "projects"
	entityReviews  = "reviews"
	entityMessages = "messages"
)

func (f ProjectFilter) values() url.Values {
	q := url.Values{}
	if f.Featured {
		q.Set("featured", "true")
	}
	if f.Published {
		q.Set("published", "true")
	}
	return q
}

func (f ProjectFilter) key() string {
	return "featured=" + strconv.FormatBool(f.Featured) + "&published=" + strconv.FormatBool(f.Published)
}

func (f MessageFilter) values() url.Values {
	q := url.Values{}
	if f.Unread {
		q.Set("unread", "true")
	}
	return q
}

// Hero returns the hero section, or nil when none has been created.
func (c *Client) Hero(ctx context.Context) (*Hero, error) {
	return query[*Hero](ctx, c, singletonKey(entityHero), "/hero", nil)
}

func (c *Client) CreateHero(ctx context.Context, h *Hero) (*Hero, error) {
	return mutate[*Hero](ctx, c, http.MethodPost, "/hero", h, singletonKey(entityHero))
}

func (c *Client) UpdateHero(ctx context.Context, p Patch) (*Hero, error) {
	return mutate[*Hero](ctx, c, http.MethodPut, "/hero", p, singletonKey(entityHero))
}

// About returns the about section, or nil when none has been created.
func (c *Client) About(ctx context.Context) (*About, error) {
	return query[*About](ctx, c, singletonKey(entityAbout), "/about", nil)
}

func (c *Client) CreateAbout(ctx context.Context, a *About) (*About, error) {
	return mutate[*About](ctx, c, http.MethodPost, "/about", a, singletonKey(entityAbout))
}

func (c *Client) UpdateAbout(ctx context.Context, p Patch) (*About, error) {
	return mutate[*About](ctx, c, http.MethodPut, "/about", p, singletonKey(entityAbout))
}

func (c *Client) Projects(ctx context.Context, f ProjectFilter) ([]Project, error) {
	return query[[]Project](ctx, c, listKey(entityProjects, f.key()), "/projects", f.values())
}

func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	return query[*Project](ctx, c, itemKey(entityProjects, id), "/projects/"+url.PathEscape(id), nil)
}

func (c *Client) CreateProject(ctx context.Context, p *Project) (*Project, error) {
	return mutate[*Project](ctx, c, http.MethodPost, "/projects", p, Key{entityProjects, "list"})
}

func (c *Client) UpdateProject(ctx context.Context, id string, p Patch) (*Project, error) {
	return mutate[*Project](ctx, c, http.MethodPut, "/projects/"+url.PathEscape(id), p,
		Key{entityProjects, "list"}, itemKey(entityProjects, id))
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := mutate[struct{}](ctx, c, http.MethodDelete, "/projects/"+url.PathEscape(id), nil,
		Key{entityProjects, "list"}, itemKey(entityProjects, id))
	return err
}

func (c *Client) Reviews(ctx context.Context) ([]Review, error) {
	return query[[]Review](ctx, c, listKey(entityReviews, ""), "/reviews", nil)
}

func (c *Client) Review(ctx context.Context, id string) (*Review, error) {
	return query[*Review](ctx, c, itemKey(entityReviews, id), "/reviews/"+url.PathEscape(id), nil)
}

func (c *Client) CreateReview(ctx context.Context, r *Review) (*Review, error) {
	return mutate[*Review](ctx, c, http.MethodPost, "/reviews", r, Key{entityReviews, "list"})
}

func (c *Client) UpdateReview(ctx context.Context, id string, p Patch) (*Review, error) {
	return mutate[*Review](ctx, c, http.MethodPut, "/reviews/"+url.PathEscape(id), p,
		Key{entityReviews, "list"}, itemKey(entityReviews, id))
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	_, err := mutate[struct{}](ctx, c, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil,
		Key{entityReviews, "list"}, itemKey(entityReviews, id))
	return err
}

// Messages lists contact messages, newest first. Requires a token.
func (c *Client) Messages(ctx context.Context, f MessageFilter) ([]Message, error) {
	return query[[]Message](ctx, c, listKey(entityMessages, strconv.FormatBool(f.Unread)), "/messages", f.values())
}

// Message returns one message with its rendered HTML body.
func (c *Client) Message(ctx context.Context, id string) (*Message, error) {
	return query[*Message](ctx, c, itemKey(entityMessages, id), "/messages/"+url.PathEscape(id), nil)
}

// UnreadCount is never cached.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/messages/unread", nil, nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		Count int64 `json:"count"`
	}
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// SendMessage submits the public contact form.
func (c *Client) SendMessage(ctx context.Context, in MessageInput) (*Message, error) {
	return mutate[*Message](ctx, c, http.MethodPost, "/messages", in, Key{entityMessages, "list"})
}

func (c *Client) MarkRead(ctx context.Context, id string, read bool) (*Message, error) {
	return c.UpdateMessage(ctx, id, Patch{"read": read})
}

func (c *Client) UpdateMessage(ctx context.Context, id string, p Patch) (*Message, error) {
	return mutate[*Message](ctx, c, http.MethodPut, "/messages/"+url.PathEscape(id), p,
		Key{entityMessages, "list"}, itemKey(entityMessages, id))
}

func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	_, err := mutate[struct{}](ctx, c, http.MethodDelete, "/messages/"+url.PathEscape(id), nil,
		Key{entityMessages, "list"}, itemKey(entityMessages, id))
	return err
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Principal, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Token string     `json:"token"`
		User  *Principal `json:"user"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	// Admin-only results fetched anonymously are no longer valid.
	c.cache.clear()
	return out.User, nil
}

// Logout revokes the current session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	err = c.do(req, nil)
	c.SetToken("")
	c.cache.clear()
	return err
}

// Session returns the signed-in principal, or nil when the token is missing
// or no longer valid.
func (c *Client) Session(ctx context.Context) (*Principal, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/session", nil, nil)
	if err != nil {
		return nil, err
	}
	var p *Principal
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return p, nil
}
