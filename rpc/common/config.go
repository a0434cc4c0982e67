package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Protocol selection
// --------------------------------------------------------------------------

// Protocol is the wire protocol used to talk to the server
type Protocol string

const (
	ProtocolXMLRPC  Protocol = "xmlrpc"
	ProtocolJSONRPC Protocol = "jsonrpc"
)

// ParseProtocol converts a string to a Protocol
func ParseProtocol(s string) (Protocol, error) {
	switch Protocol(strings.ToLower(strings.TrimSpace(s))) {
	case ProtocolXMLRPC, "":
		return ProtocolXMLRPC, nil
	case ProtocolJSONRPC:
		return ProtocolJSONRPC, nil
	default:
		return "", fmt.Errorf("invalid protocol %s (expected one of: xmlrpc, jsonrpc)", s)
	}
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

const (
	// DefaultPort is the port an OpenERP/Odoo server listens on by default
	DefaultPort = 8069
	// DefaultTimeoutSecond is used when TimeoutSecond is not set
	DefaultTimeoutSecond = 10
)

// ClientConfig holds everything needed to reach a server and to log in
type ClientConfig struct {
	// Server address
	Host   string
	Port   int
	Secure bool

	// Credentials
	Database string
	Username string
	Password string

	// Transport parameters
	Protocol      Protocol
	TimeoutSecond int
	RetryCount    int

	// Logging configuration
	LogLevel string
}

// BaseURL returns the root url of the server (e.g. http://localhost:8069)
func (c *ClientConfig) BaseURL() string {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	port := c.Port
	if port <= 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(c.Host, strconv.Itoa(port)))
}

// Validate checks that the server address is usable
func (c *ClientConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("no host configured")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := ParseProtocol(string(c.Protocol)); err != nil {
		return err
	}
	return nil
}

// Timeout returns the configured timeout in seconds, falling back to DefaultTimeoutSecond
func (c *ClientConfig) Timeout() int {
	if c.TimeoutSecond <= 0 {
		return DefaultTimeoutSecond
	}
	return c.TimeoutSecond
}

// Attempts returns how often a request is sent before giving up (at least once)
func (c *ClientConfig) Attempts() int {
	if c.RetryCount <= 0 {
		return 1
	}
	return c.RetryCount
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Server
	addSection("Server")
	addField("URL", c.BaseURL())
	addField("Protocol", string(c.Protocol))

	// Credentials
	addSection("Session")
	addField("Database", c.Database)
	addField("User", c.Username)
	addField("Password", maskPassword(c.Password))

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.Timeout()))
	addField("Retry Count", strconv.Itoa(c.Attempts()))
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// maskPassword hides a password for printing
func maskPassword(password string) string {
	if password == "" {
		return ""
	}
	return "********"
}
