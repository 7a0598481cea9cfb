package rapidwire

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// ClientVersion is the version of the RapidWire API this client was written against.
const ClientVersion = "1.0.0"

type Compatibility int

const (
	CompatibilityUnchecked Compatibility = iota
	CompatibilityOK
	CompatibilityMismatch
	CompatibilityUnknown
)

func (c Compatibility) String() string {
	switch c {
	case CompatibilityOK:
		return "compatible"
	case CompatibilityMismatch:
		return "mismatch"
	case CompatibilityUnknown:
		return "unknown"
	default:
		return "unchecked"
	}
}

// MajorVersion returns the text before the first '.' of a version string.
func MajorVersion(version string) string {
	major, _, _ := strings.Cut(strings.TrimSpace(version), ".")
	return major
}

// checkVersion compares the server's major version with ClientVersion. Every outcome is
// reported through the logger; none of them is returned as an error.
func (c *Client) checkVersion(ctx context.Context) {
	resp, err := c.GetVersion(ctx)
	if _, ok := AsMappingError(err); ok {
		c.logger.WithError(err).Warn("rapidwire: server version is unknown, compatibility is not guaranteed")
		c.compatibility = CompatibilityUnknown
		return
	}
	if err != nil {
		c.logger.WithError(err).Warn("rapidwire: failed to reach the server for the version check, compatibility is not guaranteed")
		c.compatibility = CompatibilityUnknown
		return
	}

	serverVersion := ""
	if resp != nil {
		serverVersion, _ = resp.DetailString("version")
	}
	serverVersion = strings.TrimSpace(serverVersion)
	if serverVersion == "" {
		c.logger.Warn("rapidwire: server version is unknown, compatibility is not guaranteed")
		c.compatibility = CompatibilityUnknown
		return
	}

	c.serverVersion = serverVersion
	if MajorVersion(ClientVersion) != MajorVersion(serverVersion) {
		c.logger.WithFields(logrus.Fields{
			"client_version": ClientVersion,
			"server_version": serverVersion,
		}).Warnf("rapidwire: client version (%s) and server version (%s) differ in major version, some operations may not work", ClientVersion, serverVersion)
		c.compatibility = CompatibilityMismatch
		return
	}

	c.compatibility = CompatibilityOK
}
