package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/go-telegram/bot"
)

// DownloadFile downloads a file from Telegram by file ID and returns its bytes
// and base name. maxSize bounds the read so oversized files cannot exhaust
// memory before validation sees them.
func DownloadFile(ctx context.Context, b *bot.Bot, fileID string, maxSize int64) ([]byte, string, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}

	fileURL := b.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: %s", resp.Status)
	}

	// Read one byte past the cap to detect oversized files without
	// buffering them whole.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read file data: %w", err)
	}

	return data, path.Base(file.FilePath), nil
}
