package moss

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ludo-technologies/codesim/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config configures a Client.
type Config struct {
	Server      string
	Port        int
	UserID      string
	Options     Options
	DialTimeout time.Duration
}

// Client submits snippets to the service. Each Submit call uses its own
// connection, so a Client may be shared between goroutines.
type Client struct {
	config Config
	dialer *net.Dialer
	logger zerolog.Logger
}

// NewClient validates config and returns a client.
func NewClient(config Config) (*Client, error) {
	if config.UserID == "" {
		return nil, errors.New("moss user id is required")
	}
	if config.Server == "" {
		config.Server = constants.DefaultMossServer
	}
	if config.Port == 0 {
		config.Port = constants.DefaultMossPort
	}
	if config.DialTimeout <= 0 {
		config.DialTimeout = 30 * time.Second
	}
	if err := config.Options.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		dialer: &net.Dialer{Timeout: config.DialTimeout},
		logger: log.With().Str("component", "moss").Logger(),
	}, nil
}

// Address returns host:port of the service.
func (c *Client) Address() string {
	return net.JoinHostPort(c.config.Server, strconv.Itoa(c.config.Port))
}

// Open dials the service and returns a session in the Connected state.
func (c *Client) Open(ctx context.Context) (*Session, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.Address())
	if err != nil {
		return nil, &ProtocolError{State: StateConnected, Message: "connect to " + c.Address(), Err: err}
	}
	c.logger.Debug().Str("address", c.Address()).Msg("connected")
	return newSession(ctx, conn, c.config.Options, c.logger), nil
}

// Submit runs a whole submission and returns the report URL. hook may be nil.
func (c *Client) Submit(ctx context.Context, files []File, hook UploadHook) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("no files to submit")
	}

	session, err := c.Open(ctx)
	if err != nil {
		return "", err
	}
	defer session.Close()
	session.OnUpload(hook)

	if err := session.SendOptions(c.config.UserID); err != nil {
		return "", err
	}
	if err := session.SendLanguage(); err != nil {
		return "", err
	}
	if err := session.AwaitLanguageAck(); err != nil {
		return "", err
	}
	for _, file := range files {
		if err := session.Upload(file); err != nil {
			return "", err
		}
	}

	reportURL, err := session.Query()
	if err != nil {
		return "", err
	}
	c.logger.Info().Int("files", len(files)).Str("url", reportURL).Msg("submission complete")
	return reportURL, nil
}
