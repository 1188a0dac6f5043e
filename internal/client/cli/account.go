package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: avatar <image file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	contentType := http.DetectContentType(head[:n])
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	up, err := a.api.RequestAvatarUpload(ctx)
	if err != nil {
		return err
	}
	if err := a.api.UploadAvatar(ctx, up.URL, f, info.Size(), contentType); err != nil {
		return err
	}

	if u := a.session.User(); u != nil {
		key := up.Key
		u.Avatar = &key
		if err := a.session.SetUser(ctx, u); err != nil {
			return err
		}
	}

	a.printf("Avatar uploaded: %s\n", up.Key)
	return nil
}

func (a *App) Health(ctx context.Context) error {
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}

	a.printf("%s: %s (database %s, uptime %s)\n", h.Service, h.Status, h.Database, formatUptime(h.Uptime))
	return nil
}

func formatUptime(seconds float64) string {
	s := int64(seconds)
	return fmt.Sprintf("%dh%02dm%02ds", s/3600, s%3600/60, s%60)
}
