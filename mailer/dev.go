package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DevSender implements Sender for local development. It saves each magic
// link email as an HTML file plus a JSON metadata file (which includes the
// bare link, so it can be followed straight from the terminal) instead of
// sending anything.
type DevSender struct {
	dir     string
	product string
}

// NewDevSender creates a development sender that writes emails to dir. The
// directory is created on first send if it does not exist.
func NewDevSender(dir, product string) *DevSender {
	return &DevSender{dir: dir, product: product}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Link      string `json:"link"`
}

func (d *DevSender) SendLink(ctx context.Context, email, link string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, email)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	body, err := renderLinkEmail(d.product, link)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	now := time.Now()
	base := now.Format("2006_01_02_150405") + "_magic_link"

	htmlPath := filepath.Join(d.dir, base+".html")
	if err := os.WriteFile(htmlPath, []byte(body), 0644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    email,
		Link:      link,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, base+".json")
	if err := os.WriteFile(jsonPath, meta, 0644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return nil
}
