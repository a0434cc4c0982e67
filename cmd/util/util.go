package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/oconn/rpc/common"
	"github.com/ValentinKolb/oconn/rpc/serializer"
	"github.com/ValentinKolb/oconn/rpc/transport"
	"github.com/ValentinKolb/oconn/rpc/transport/jsonrpc"
	"github.com/ValentinKolb/oconn/rpc/transport/xmlrpc"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Flags and configuration
// --------------------------------------------------------------------------

// SetupRPCClientFlags adds the connection flags to a command group
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "host"
	cmd.PersistentFlags().String(key, "localhost", WrapString("Host name or address of the server"))

	key = "port"
	cmd.PersistentFlags().Int(key, common.DefaultPort, WrapString("Port of the server"))

	key = "secure"
	cmd.PersistentFlags().Bool(key, false, WrapString("Use https to connect to the server"))

	key = "database"
	cmd.PersistentFlags().String(key, "", WrapString("Name of the database to log in to"))

	key = "username"
	cmd.PersistentFlags().String(key, "admin", WrapString("Login of the user"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("Password of the user (prefer the OCONN_PASSWORD environment variable)"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, common.DefaultTimeoutSecond, WrapString("The timeout in seconds of a single request"))

	key = "transport-retries"
	cmd.PersistentFlags().Int(key, 1, WrapString("How many times a request is sent before giving up. Server faults are never retried"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level of the client (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("oconn")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() (*common.ClientConfig, error) {
	protocol, err := common.ParseProtocol(viper.GetString("protocol"))
	if err != nil {
		return nil, err
	}

	conf := &common.ClientConfig{
		Host:          viper.GetString("host"),
		Port:          viper.GetInt("port"),
		Secure:        viper.GetBool("secure"),
		Database:      viper.GetString("database"),
		Username:      viper.GetString("username"),
		Password:      viper.GetString("password"),
		Protocol:      protocol,
		TimeoutSecond: viper.GetInt("timeout"),
		RetryCount:    viper.GetInt("transport-retries"),
		LogLevel:      viper.GetString("log-level"),
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// SetupClient binds the flags of cmd, reads the client configuration and initializes the loggers
func SetupClient(cmd *cobra.Command) (*common.ClientConfig, error) {
	if err := BindCommandFlags(cmd); err != nil {
		return nil, err
	}

	config, err := GetClientConfig()
	if err != nil {
		return nil, err
	}

	if err := common.InitLoggers(*config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetTransport creates a transport for the configured protocol
func GetTransport(config *common.ClientConfig) (transport.IRPCClientTransport, error) {
	switch config.Protocol {
	case common.ProtocolXMLRPC:
		return xmlrpc.NewXMLRPCClientTransport(), nil
	case common.ProtocolJSONRPC:
		return jsonrpc.NewJSONRPCClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid protocol %s", config.Protocol)
	}
}

// --------------------------------------------------------------------------
// Output
// --------------------------------------------------------------------------

// UseColor reports whether colored output is enabled. Colors are off if requested by
// flag or if stdout is not a terminal.
func UseColor() bool {
	if viper.GetBool("no-color") {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// GetSerializer creates the output serializer based on configuration
func GetSerializer() (serializer.IResultSerializer, error) {
	switch viper.GetString("output") {
	case "text", "":
		color.NoColor = !UseColor()
		return serializer.NewTextSerializer(!color.NoColor), nil
	case "json":
		return serializer.NewJSONSerializer(), nil
	case "yaml":
		return serializer.NewYAMLSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid output format %s (expected one of: text, json, yaml)", viper.GetString("output"))
	}
}

// PrintResult writes v to the command's output using the configured serializer
func PrintResult(cmd *cobra.Command, v interface{}) error {
	s, err := GetSerializer()
	if err != nil {
		return err
	}
	return WriteResult(cmd.OutOrStdout(), s, v)
}

// WriteResult serializes v and writes it to w followed by a newline if missing
func WriteResult(w io.Writer, s serializer.IResultSerializer, v interface{}) error {
	data, err := s.Serialize(v)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// PrintMetrics writes the collected call metrics to stderr if requested by flag
func PrintMetrics() {
	if viper.GetBool("print-metrics") {
		common.WriteMetrics(os.Stderr)
	}
}

// --------------------------------------------------------------------------
// Argument parsing
// --------------------------------------------------------------------------

// ParseIDs parses a comma separated list of record ids (e.g. "1,2,3")
func ParseIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no ids given")
	}
	return ids, nil
}

// ParseFields parses a comma separated list of field names. An empty string means all fields.
func ParseFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// ParseJSON decodes a json argument. Numbers become int64 or float64 so every
// transport can encode them.
func ParseJSON(s string) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewBufferString(s))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid json %q: %w", s, err)
	}
	return common.Normalize(v), nil
}

// ParseJSONObject decodes a json object argument (e.g. the values of create and write)
func ParseJSONObject(s string) (map[string]interface{}, error) {
	v, err := ParseJSON(s)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a json object, got %s", s)
	}
	return m, nil
}

// ParseJSONList decodes a json list argument (e.g. a domain or positional params)
func ParseJSONList(s string) ([]interface{}, error) {
	v, err := ParseJSON(s)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a json list, got %s", s)
	}
	return l, nil
}
