// Package connectivity reports connectivity information such as the network
// type and the wifi adapter fields.
//
// The Reporter is the only place that knows whether the platform offers the
// modern capability query. It builds a classifier.Snapshot in the matching
// shape and hands it to the classifier. Provider failures are logged and
// degrade to "none" or to an absent value; the reporter never returns them.
package connectivity

import (
	"context"
	"fmt"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
	"github.com/mosiko1234/heimdal/connectivity/internal/errors"
	"github.com/mosiko1234/heimdal/connectivity/internal/logger"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform"
)

// Method names accepted by Dispatch
const (
	MethodCheck         = "check"
	MethodSubtype       = "subtype"
	MethodWifiName      = "wifiName"
	MethodWifiBSSID     = "wifiBSSID"
	MethodWifiIPAddress = "wifiIPAddress"
)

// Methods lists the method names accepted by Dispatch
var Methods = []string{MethodCheck, MethodSubtype, MethodWifiName, MethodWifiBSSID, MethodWifiIPAddress}

// Options tunes the reporter
type Options struct {
	// ForceLegacy skips the capability query even when the provider offers it
	ForceLegacy bool
}

// Reporter answers connectivity queries for one provider
type Reporter struct {
	provider   platform.ConnectivityProvider
	classifier *classifier.Classifier
	opts       Options
	logger     *logger.Logger
}

// NewReporter creates a reporter for the given provider
func NewReporter(provider platform.ConnectivityProvider, opts Options) *Reporter {
	return &Reporter{
		provider:   provider,
		classifier: classifier.NewClassifier(),
		opts:       opts,
		logger:     logger.NewComponentLogger("Reporter").WithField("provider", provider.Name()),
	}
}

// UsesCapabilities reports whether snapshots are taken in the modern shape
func (r *Reporter) UsesCapabilities() bool {
	return !r.opts.ForceLegacy && r.provider.SupportsCapabilities()
}

// Snapshot queries the provider and builds a snapshot. Modern snapshots
// also carry the legacy record so that unrecognised transports can fall back
// to it.
func (r *Reporter) Snapshot(ctx context.Context) classifier.Snapshot {
	legacy, err := r.provider.ActiveNetworkInfo(ctx)
	if err != nil {
		r.logger.ErrorWithContext(err, "legacy network query failed")
		legacy = nil
	}

	if !r.UsesCapabilities() {
		return classifier.LegacySnapshot(legacy)
	}

	caps, err := r.provider.ActiveCapabilities(ctx)
	if err != nil {
		r.logger.ErrorWithContext(err, "capability query failed")
		caps = nil
	}

	return classifier.ModernSnapshot(caps, legacy)
}

func (r *Reporter) wifiInfo(ctx context.Context) *classifier.WifiInfo {
	info, err := r.provider.WifiInfo(ctx)
	if err != nil {
		r.logger.ErrorWithContext(err, "wifi adapter query failed")
		return nil
	}
	return info
}

// NetworkType returns "wifi", "mobile" or "none"
func (r *Reporter) NetworkType(ctx context.Context) classifier.NetworkType {
	s := r.Snapshot(ctx)
	nt := r.classifier.ClassifyPrimary(s)
	r.logger.Debug("Classified %s snapshot as %s", s.Shape, nt)
	return nt
}

// NetworkSubtype returns the mobile subtype label, if any
func (r *Reporter) NetworkSubtype(ctx context.Context) (classifier.Subtype, bool) {
	legacy, err := r.provider.ActiveNetworkInfo(ctx)
	if err != nil {
		r.logger.ErrorWithContext(err, "legacy network query failed")
		return "", false
	}
	return r.classifier.ClassifySubtype(classifier.LegacySnapshot(legacy))
}

// WifiName returns the SSID without quotes, if any
func (r *Reporter) WifiName(ctx context.Context) (string, bool) {
	return classifier.FormatWifiName(r.wifiInfo(ctx))
}

// WifiBSSID returns the access point BSSID, if any
func (r *Reporter) WifiBSSID(ctx context.Context) (string, bool) {
	return classifier.FormatWifiBSSID(r.wifiInfo(ctx))
}

// WifiIPAddress returns the wifi adapter's IPv4 address, if any
func (r *Reporter) WifiIPAddress(ctx context.Context) (string, bool) {
	return classifier.FormatWifiIPAddress(r.wifiInfo(ctx))
}

// Status runs every query against a single snapshot
func (r *Reporter) Status(ctx context.Context) *classifier.Result {
	return r.classifier.Classify(r.Snapshot(ctx), r.wifiInfo(ctx))
}

// Dispatch runs the query named by method. The boolean is false when the
// query has no value. Unknown methods return errors.ErrNotImplemented.
func (r *Reporter) Dispatch(ctx context.Context, method string) (string, bool, error) {
	switch method {
	case MethodCheck:
		return r.NetworkType(ctx).String(), true, nil
	case MethodSubtype:
		subtype, ok := r.NetworkSubtype(ctx)
		return subtype.String(), ok, nil
	case MethodWifiName:
		name, ok := r.WifiName(ctx)
		return name, ok, nil
	case MethodWifiBSSID:
		bssid, ok := r.WifiBSSID(ctx)
		return bssid, ok, nil
	case MethodWifiIPAddress:
		ip, ok := r.WifiIPAddress(ctx)
		return ip, ok, nil
	default:
		return "", false, fmt.Errorf("%w: %s", errors.ErrNotImplemented, method)
	}
}
