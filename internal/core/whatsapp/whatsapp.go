// Package whatsapp sends WhatsApp pings through whatsmeow. It is used by the
// notification service for escalation and reminder alerts; the chat surface
// itself stays on the web portal.
package whatsapp

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image/png"
	"log"

	qrcode "github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"
)

// Sender is what the notification service needs from this package.
type Sender interface {
	SendMessage(phoneNumber, message string) error
}

// Service wraps a whatsmeow client backed by a postgres session store, with a
// local SQLite fallback for development.
type Service struct {
	client   *whatsmeow.Client
	storeURL string
}

func NewService(storeURL string) *Service {
	return &Service{storeURL: storeURL}
}

func (s *Service) initStore() (*sqlstore.Container, error) {
	ctx := context.Background()
	dbLog := waLog.Stdout("WhatsApp-Store", "ERROR", true)

	if s.storeURL != "" {
		container, err := sqlstore.New(ctx, "postgres", s.storeURL, dbLog)
		if err != nil {
			return nil, fmt.Errorf("failed to init PostgreSQL store: %w", err)
		}
		if err := container.Upgrade(ctx); err != nil {
			return nil, fmt.Errorf("failed to upgrade PostgreSQL schema: %w", err)
		}
		return container, nil
	}

	log.Println("💾 Using local SQLite store (whatsapp-store.db)")
	rawDB, err := sql.Open("sqlite", "file:whatsapp-store.db?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	container := sqlstore.NewWithDB(rawDB, "sqlite", dbLog)
	if err := container.Upgrade(ctx); err != nil {
		return nil, fmt.Errorf("failed to upgrade SQLite schema: %w", err)
	}
	return container, nil
}

// Connect opens the session. A device without a stored session prints a
// pairing QR to the console and writes it as a PNG next to the binary.
func (s *Service) Connect() error {
	container, err := s.initStore()
	if err != nil {
		return fmt.Errorf("failed to init store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get device: %w", err)
	}

	s.client = whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "WARN", true))

	if s.client.Store.ID == nil {
		qrChan, _ := s.client.GetQRChannel(context.Background())
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				log.Println("🔗 Scan this QR in WhatsApp:", evt.Code)
				if img, err := qrcode.New(evt.Code, qrcode.Medium); err == nil {
					var buf bytes.Buffer
					if png.Encode(&buf, img.Image(256)) == nil {
						_ = qrcode.WriteFile(evt.Code, qrcode.Medium, 256, "whatsapp-qr.png")
						log.Println("🖼️ QR code saved to whatsapp-qr.png")
					}
				}
			case "success":
				log.Println("✅ WhatsApp pairing complete")
				return nil
			case "timeout":
				return fmt.Errorf("QR code timeout")
			}
		}
		return nil
	}

	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to reconnect: %w", err)
	}
	log.Println("✅ Reconnected to WhatsApp")
	return nil
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
		log.Println("🔌 WhatsApp client disconnected")
	}
}

func (s *Service) SendMessage(phoneNumber, message string) error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}

	jid := types.NewJID(phoneNumber, types.DefaultUserServer)
	msg := &waProto.Message{
		Conversation: proto.String(message),
	}

	_, err := s.client.SendMessage(context.Background(), jid, msg)
	return err
}
