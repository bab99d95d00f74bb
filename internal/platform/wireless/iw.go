// Package wireless reads the association state of a wifi interface by running
// `iw dev <iface> link`.
package wireless

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// LinkInfo is the association state of one wifi interface. Nil fields were
// not reported.
type LinkInfo struct {
	SSID  *string
	BSSID *string
}

// Querier runs the iw binary
type Querier struct {
	iwPath  string
	timeout time.Duration
	run     func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewQuerier creates a querier for the given iw binary
func NewQuerier(iwPath string, timeout time.Duration) *Querier {
	return &Querier{
		iwPath:  iwPath,
		timeout: timeout,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Link returns the association state of iface
func (q *Querier) Link(ctx context.Context, iface string) (*LinkInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	output, err := q.run(ctx, q.iwPath, "dev", iface, "link")
	if err != nil {
		return nil, fmt.Errorf("failed to query link of %s: %w", iface, err)
	}

	return ParseLink(string(output)), nil
}

// ParseLink parses the output of `iw dev <iface> link`. iw escapes SSID bytes
// it cannot print as \xNN; they are decoded back to raw bytes.
func ParseLink(output string) *LinkInfo {
	info := &LinkInfo{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "Not connected"):
			return &LinkInfo{}
		case strings.HasPrefix(trimmed, "Connected to "):
			fields := strings.Fields(strings.TrimPrefix(trimmed, "Connected to "))
			if len(fields) > 0 {
				bssid := strings.ToLower(fields[0])
				info.BSSID = &bssid
			}
		case trimmed == "SSID:" || strings.HasPrefix(trimmed, "SSID: "):
			ssid := unescapeSSID(strings.TrimPrefix(strings.TrimPrefix(trimmed, "SSID:"), " "))
			info.SSID = &ssid
		}
	}

	return info
}

// unescapeSSID decodes the \xNN sequences written by iw's print_ssid_escaped
func unescapeSSID(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) && s[i+1] == 'x' {
			if b, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				out = append(out, byte(b))
				i += 3
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
