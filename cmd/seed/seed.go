package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/repository"
	"blogapp/internal/service"
)

//go:embed seed.json
var defaultFixture []byte

type fixture struct {
	Users []fixtureUser `json:"users"`
}

type fixtureUser struct {
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Posts    []fixturePost `json:"posts"`
}

type fixturePost struct {
	Title    string           `json:"title"`
	Body     string           `json:"body"`
	Comments []fixtureComment `json:"comments"`
}

type fixtureComment struct {
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

type stats struct {
	Users        int
	SkippedUsers int
	Posts        int
	Comments     int
}

// loadFixture reads the fixture from a file path or an http(s) URL. An empty
// source selects the embedded demo data.
func loadFixture(source string) (*fixture, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case source == "":
		data = defaultFixture
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = fetchFixture(source)
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &fx, nil
}

func fetchFixture(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture source returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type seeder struct {
	users    repository.UserRepository
	accounts service.AccountService
	posts    service.PostService
	log      *slog.Logger
}

// run registers every fixture user and then writes the posts and comments of
// the users it created. Users that already exist are skipped along with their
// content, so running twice does not duplicate anything.
func (s *seeder) run(ctx context.Context, fx *fixture) (stats, error) {
	var st stats
	created := make(map[string]uint)

	for _, u := range fx.Users {
		user, err := s.accounts.Register(ctx, u.Username, u.Email, u.Password)
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) {
			s.log.Info("user exists, skipping", "username", u.Username)
			st.SkippedUsers++
			continue
		}
		if err != nil {
			return st, fmt.Errorf("register %s: %w", u.Username, err)
		}
		created[u.Username] = user.ID
		st.Users++
	}

	for _, u := range fx.Users {
		ownerID, ok := created[u.Username]
		if !ok {
			continue
		}
		for _, p := range u.Posts {
			post, err := s.posts.Create(ctx, ownerID, p.Title, p.Body)
			if err != nil {
				return st, fmt.Errorf("post %q by %s: %w", p.Title, u.Username, err)
			}
			st.Posts++

			for _, c := range p.Comments {
				authorID, err := s.authorID(ctx, created, c.Author)
				if errors.Is(err, apperrors.ErrNotFound) {
					s.log.Warn("unknown comment author, skipping", "author", c.Author, "post_id", post.ID)
					continue
				}
				if err != nil {
					return st, err
				}
				if _, err := s.posts.AddComment(ctx, authorID, post.ID, c.Comment); err != nil {
					return st, fmt.Errorf("comment by %s on post %d: %w", c.Author, post.ID, err)
				}
				st.Comments++
			}
		}
	}
	return st, nil
}

func (s *seeder) authorID(ctx context.Context, created map[string]uint, username string) (uint, error) {
	if id, ok := created[username]; ok {
		return id, nil
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("author %s: %w", username, err)
	}
	return user.ID, nil
}
