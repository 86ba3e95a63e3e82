package moss

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// File is one snippet staged for upload.
type File struct {
	Name    string
	Content []byte
}

// UploadHook is called after each file has been written to the connection.
type UploadHook func(index int, name string, size int)

// Session drives one submission over an open connection. Every method
// checks the current state first and fails with a ProtocolError when called
// out of order. A Session is not safe for concurrent use.
type Session struct {
	conn    net.Conn
	reader  *bufio.Reader
	state   State
	options Options
	index   int
	hook    UploadHook
	logger  zerolog.Logger
	stop    func() bool
}

func newSession(ctx context.Context, conn net.Conn, options Options, logger zerolog.Logger) *Session {
	s := &Session{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		state:   StateConnected,
		options: options,
		logger:  logger,
	}
	// unblock pending reads and writes once ctx is done
	s.stop = context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	return s
}

// State returns the current protocol state.
func (s *Session) State() State {
	return s.state
}

// OnUpload registers a hook called after every uploaded file.
func (s *Session) OnUpload(hook UploadHook) {
	s.hook = hook
}

// SendOptions registers the account and sends the option lines.
func (s *Session) SendOptions(userID string) error {
	if err := s.expect(StateConnected, "send options"); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("moss %s\n", userID),
		fmt.Sprintf("directory %d\n", boolFlag(s.options.Directory)),
		fmt.Sprintf("X %d\n", boolFlag(s.options.ExcludeMatches)),
		fmt.Sprintf("maxmatches %d\n", s.options.MaxMatches),
		fmt.Sprintf("show %d\n", s.options.ShowCount),
	}
	for _, line := range lines {
		if err := s.write([]byte(line)); err != nil {
			return err
		}
	}
	s.state = StateOptionsSent
	return nil
}

// SendLanguage sends the language line.
func (s *Session) SendLanguage() error {
	if err := s.expect(StateOptionsSent, "send language"); err != nil {
		return err
	}
	if err := s.write([]byte(fmt.Sprintf("language %s\n", s.options.Language))); err != nil {
		return err
	}
	s.state = StateAwaitingLanguageAck
	return nil
}

// AwaitLanguageAck reads the server's answer to the language line. A
// rejection ends the session.
func (s *Session) AwaitLanguageAck() error {
	if err := s.expect(StateAwaitingLanguageAck, "await language ack"); err != nil {
		return err
	}
	reply, err := s.readLine()
	if err != nil {
		return err
	}
	if strings.HasPrefix(reply, "no") {
		_ = s.write([]byte("end\n"))
		s.Close()
		return &ProtocolError{State: StateAwaitingLanguageAck, Message: fmt.Sprintf("language %q not accepted by server", s.options.Language)}
	}
	s.state = StateUploading
	return nil
}

// Upload sends one file header followed by its exact bytes.
func (s *Session) Upload(file File) error {
	if err := s.expect(StateUploading, "upload"); err != nil {
		return err
	}
	s.index++
	name := displayName(file.Name, s.index)
	header := fmt.Sprintf("file %d %s %d %s\n", s.index, s.options.Language, len(file.Content), name)
	if err := s.write([]byte(header)); err != nil {
		return err
	}
	if err := s.write(file.Content); err != nil {
		return err
	}

	s.logger.Debug().Int("index", s.index).Str("name", name).Int("bytes", len(file.Content)).Msg("uploaded snippet")
	if s.hook != nil {
		s.hook(s.index, name, len(file.Content))
	}
	return nil
}

// Query asks for the report, reads its URL and closes the session.
func (s *Session) Query() (string, error) {
	if err := s.expect(StateUploading, "query"); err != nil {
		return "", err
	}
	if s.index == 0 {
		return "", s.fail("query", "no files uploaded", nil)
	}
	if err := s.write([]byte(fmt.Sprintf("query 0 %s\n", s.options.Comment))); err != nil {
		return "", err
	}
	s.state = StateAwaitingResult

	reply, err := s.readLine()
	if err != nil {
		return "", err
	}
	_ = s.write([]byte("end\n"))
	s.Close()

	if !isReportURL(reply) {
		return "", &ProtocolError{State: StateAwaitingResult, Message: fmt.Sprintf("malformed report reply %q", reply)}
	}
	return reply, nil
}

// Close releases the connection. It is safe to call more than once.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	if s.stop != nil {
		s.stop()
	}
	_ = s.conn.Close()
}

func (s *Session) expect(want State, op string) error {
	if s.state != want {
		return &ProtocolError{State: s.state, Message: fmt.Sprintf("%s called in state %s, want %s", op, s.state, want)}
	}
	return nil
}

func (s *Session) write(data []byte) error {
	if _, err := s.conn.Write(data); err != nil {
		return s.fail("write", "connection lost", err)
	}
	return nil
}

func (s *Session) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", s.fail("read", "no reply from server", err)
	}
	return strings.TrimSpace(line), nil
}

// fail closes the session and reports the state the failure happened in.
func (s *Session) fail(op, message string, err error) error {
	state := s.state
	s.Close()
	return &ProtocolError{State: state, Message: op + ": " + message, Err: err}
}

// displayName makes a name safe for the space-separated header line.
func displayName(name string, index int) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return fmt.Sprintf("snippet%d", index)
	}
	return name
}

func isReportURL(reply string) bool {
	u, err := url.Parse(reply)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
