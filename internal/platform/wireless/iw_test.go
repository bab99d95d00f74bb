package wireless

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const connectedOutput = `Connected to 3C:37:86:AA:BB:CC (on wlp2s0)
	SSID: Home Network
	freq: 5180
	RX: 1180434 bytes (5201 packets)
	TX: 148220 bytes (860 packets)
	signal: -52 dBm
	rx bitrate: 390.0 MBit/s VHT-MCS 4 80MHz short GI VHT-NSS 2
	tx bitrate: 433.3 MBit/s VHT-MCS 9 80MHz short GI VHT-NSS 1

	bss flags:	short-slot-time
	dtim period:	1
	beacon int:	100
`

func TestParseLinkConnected(t *testing.T) {
	info := ParseLink(connectedOutput)

	require.NotNil(t, info.BSSID)
	require.NotNil(t, info.SSID)
	assert.Equal(t, "3c:37:86:aa:bb:cc", *info.BSSID)
	assert.Equal(t, "Home Network", *info.SSID)
}

func TestParseLinkNotConnected(t *testing.T) {
	info := ParseLink("Not connected.\n")

	assert.Nil(t, info.SSID)
	assert.Nil(t, info.BSSID)
}

func TestParseLinkKeepsQuotes(t *testing.T) {
	info := ParseLink("Connected to 02:00:00:00:00:01 (on wlan0)\n\tSSID: \"quoted\"\n")

	require.NotNil(t, info.SSID)
	assert.Equal(t, `"quoted"`, *info.SSID)
}

func TestQuerierLink(t *testing.T) {
	q := NewQuerier("/usr/sbin/iw", time.Second)

	var gotName string
	var gotArgs []string
	q.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return []byte(connectedOutput), nil
	}

	info, err := q.Link(context.Background(), "wlp2s0")
	require.NoError(t, err)
	assert.Equal(t, "/usr/sbin/iw", gotName)
	assert.Equal(t, []string{"dev", "wlp2s0", "link"}, gotArgs)
	assert.Equal(t, "Home Network", *info.SSID)
}

func TestQuerierLinkError(t *testing.T) {
	q := NewQuerier("iw", time.Second)
	q.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 237")
	}

	_, err := q.Link(context.Background(), "wlan0")
	assert.ErrorContains(t, err, "wlan0")
}

func TestParseLinkUnescapesSSID(t *testing.T) {
	tests := []struct {
		name     string
		printed  string
		expected string
	}{
		{"utf-8", `Caf\xc3\xa9`, "Café"},
		{"leading space", `\x20lobby`, " lobby"},
		{"trailing space", `lobby\x20`, "lobby "},
		{"backslash", `a\x5cb`, `a\b`},
		{"truncated escape", `abc\x4`, `abc\x4`},
		{"invalid escape", `abc\xzz`, `abc\xzz`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseLink("Connected to 02:00:00:00:00:01 (on wlan0)\n\tSSID: " + tt.printed + "\n")
			require.NotNil(t, info.SSID)
			assert.Equal(t, tt.expected, *info.SSID)
		})
	}
}
