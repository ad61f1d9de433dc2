package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gallery/internal/client/client"
	"github.com/dmitrijs2005/gallery/internal/client/config"
	"github.com/dmitrijs2005/gallery/internal/client/repositories/token"
	"github.com/dmitrijs2005/gallery/internal/client/services"
)

type App struct {
	authService    services.AuthService
	galleryService services.GalleryService
	reader         *bufio.Reader
	out            io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	tokens := token.NewFileRepository(c.TokenFile)

	return &App{
		authService:    services.NewAuthService(apiClient, tokens),
		galleryService: services.NewGalleryService(apiClient, tokens),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run executes the command in args and returns its error.
func (a *App) Run(ctx context.Context, args []string) error {
	return a.dispatch(ctx, args)
}
