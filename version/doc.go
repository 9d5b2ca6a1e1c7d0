// Package version reports the build version of relaypage.
//
// Set the version during build with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/relaypage/version.Version=1.2.3 \
//	  -X github.com/ncobase/relaypage/version.Revision=abc123 \
//	  -X 'github.com/ncobase/relaypage/version.BuiltAt=$(date)'" ./cmd/relaypage
//
// Unset values are filled from the VCS information the go tool stamps
// into binaries built inside a repository.
package version
