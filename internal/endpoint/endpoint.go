package endpoint

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidIP   = errors.New("invalid ip address")
	ErrInvalidPort = errors.New("invalid port")
)

// Endpoint is a validated IPv4 address and TCP port pair used for adb connect.
type Endpoint struct {
	IP   string
	Port int
}

// String renders the endpoint in the "ip:port" form adb expects.
func (e Endpoint) String() string {
	return e.IP + ":" + strconv.Itoa(e.Port)
}

// ValidateIP reports whether s is a dotted IPv4 literal with four octets in [0,255].
// Surrounding whitespace is ignored; whitespace inside the address is not.
func ValidateIP(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if _, ok := parseDecimal(p, 255); !ok {
			return false
		}
	}
	return true
}

// ValidatePort reports whether s is a decimal port number in [0,65535].
func ValidatePort(s string) bool {
	_, ok := parseDecimal(strings.TrimSpace(s), 65535)
	return ok
}

// New builds an Endpoint from raw form input, trimming both fields.
func New(ip, port string) (Endpoint, error) {
	ip = strings.TrimSpace(ip)
	port = strings.TrimSpace(port)
	if !ValidateIP(ip) {
		return Endpoint{}, ErrInvalidIP
	}
	n, ok := parseDecimal(port, 65535)
	if !ok {
		return Endpoint{}, ErrInvalidPort
	}
	return Endpoint{IP: ip, Port: n}, nil
}

// Parse reads an "ip:port" string, splitting on the first colon.
func Parse(s string) (Endpoint, error) {
	ip, port, _ := Split(s)
	return New(ip, port)
}

// Split separates "ip:port" on the first colon without validating either part.
// ok is false when s has no colon, in which case both parts are empty.
func Split(s string) (ip, port string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// parseDecimal accepts only ASCII digits; signs and inner spaces are rejected.
// Leading zeros are allowed in any number.
func parseDecimal(s string, max int) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	if s = strings.TrimLeft(s, "0"); s == "" {
		return 0, true
	}
	if len(s) > len(strconv.Itoa(max)) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		return 0, false
	}
	return n, true
}
