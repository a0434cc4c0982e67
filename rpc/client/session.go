package client

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"strings"
)

// Session is an authenticated connection to a database of the server.
// It is created by Connect and immutable afterward. Validity is only checked at
// login: a session revoked on the server surfaces as an error of the next call.
type Session struct {
	config    common.ClientConfig
	userID    int64
	transport transport.IRPCClientTransport
}

// Connect connects the transport and logs in with the credentials of the config.
// The returned session owns the transport, use Session.Close to release it.
//
// Usage:
//
//	s, err := client.Connect(ctx, config, xmlrpc.NewXMLRPCClientTransport())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
func Connect(
	ctx context.Context,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (*Session, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	// Login
	uid, err := login(ctx, config, transport)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}

	Logger.Infof("logged in to %s (database %s) as %s (uid %d)", config.BaseURL(), config.Database, config.Username, uid)

	return &Session{
		config:    config,
		userID:    uid,
		transport: transport,
	}, nil
}

// login performs common.login and returns the user id
func login(ctx context.Context, config common.ClientConfig, t transport.IRPCClientTransport) (int64, error) {
	result, err := invokeRPCCall(ctx, t, common.MethodLogin,
		common.ServiceCommon, common.MethodLogin,
		config.Database, config.Username, config.Password,
	)
	if err != nil {
		return 0, fmt.Errorf("login: %w", err)
	}

	// The server answers with false for bad credentials
	uid, err := common.ToInt64(result)
	if err != nil || uid <= 0 {
		return 0, ErrLoginFailed
	}
	return uid, nil
}

// --------------------------------------------------------------------------
// Getters
// --------------------------------------------------------------------------

// Server returns the host name of the server
func (s *Session) Server() string { return s.config.Host }

// Port returns the port of the server
func (s *Session) Port() int { return s.config.Port }

// Database returns the name of the database
func (s *Session) Database() string { return s.config.Database }

// UserName returns the login of the user
func (s *Session) UserName() string { return s.config.Username }

// UserID returns the numeric user id obtained at login
func (s *Session) UserID() int64 { return s.userID }

// Config returns a copy of the configuration the session was created with
func (s *Session) Config() common.ClientConfig { return s.config }

// Close closes the underlying transport
func (s *Session) Close() error {
	return s.transport.Close()
}

// String returns a representation of the session for debugging (the password is masked)
func (s *Session) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("server: %s\n", s.config.Host))
	sb.WriteString(fmt.Sprintf("port: %d\n", s.config.Port))
	sb.WriteString(fmt.Sprintf("database: %s\n", s.config.Database))
	sb.WriteString(fmt.Sprintf("user: %s\n", s.config.Username))
	sb.WriteString("password: ********\n")
	sb.WriteString(fmt.Sprintf("id: %d\n", s.userID))
	return sb.String()
}

// --------------------------------------------------------------------------
// Object service
// --------------------------------------------------------------------------

// execute calls object.execute. The database, user id, password, model and method
// are always the first five positional arguments.
func (s *Session) execute(ctx context.Context, model, method string, params ...interface{}) (interface{}, error) {
	args := make([]interface{}, 0, 5+len(params))
	args = append(args, s.config.Database, s.userID, s.config.Password, model, method)
	args = append(args, params...)

	result, err := invokeRPCCall(ctx, s.transport, method, common.ServiceObject, common.MethodExecute, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", model, method, err)
	}
	return result, nil
}
