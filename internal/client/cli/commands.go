package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/gallery/internal/client/models"
	"github.com/dmitrijs2005/gallery/internal/common"
)

const usage = `usage: gallery [-server URL] [-token-file PATH] <command> [args]

commands:
  signup                 create an account
  login                  log in and remember the session
  logout                 end the session
  upload [flags] <file>  upload an image (-title, -artist, -url)
  list                   list your images
  status                 check the server and the local session
`

// ErrUsage is returned for an unknown command or malformed arguments.
var ErrUsage = errors.New("invalid usage")

func (a *App) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	case "signup":
		return a.signup(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout(ctx)
	case "upload":
		return a.upload(ctx, rest)
	case "list":
		return a.list(ctx)
	case "status":
		return a.status(ctx)
	default:
		fmt.Fprintf(a.out, "unknown command %q\n\n%s", cmd, usage)
		return ErrUsage
	}
}

func (a *App) credentials() (string, []byte, error) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

func (a *App) signup(ctx context.Context) error {
	username, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Signup(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signup successful. Run 'login' to start a session.")
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", username)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var in models.NewUpload
	fs.StringVar(&in.Title, "title", "", "image title")
	fs.StringVar(&in.Artist, "artist", "", "artist name")
	fs.StringVar(&in.Link, "url", "", "related link")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: upload takes exactly one file", ErrUsage)
	}
	in.Path = fs.Arg(0)

	e, err := a.galleryService.Upload(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s\n%s\n", e.Filename, e.ImageURL)
	return nil
}

func (a *App) list(ctx context.Context) error {
	entries, err := a.galleryService.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No images yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UPLOADED\tTITLE\tARTIST\tLINK\tIMAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.UploadDate.Local().Format("2006-01-02 15:04"),
			dash(e.Title), dash(e.Artist), dash(e.URL), e.ImageURL)
	}
	return tw.Flush()
}

func (a *App) status(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up.")
	if a.authService.LoggedIn() {
		fmt.Fprintln(a.out, "Session: logged in.")
	} else {
		fmt.Fprintln(a.out, "Session: not logged in.")
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
