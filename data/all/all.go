// Package all registers every store driver at once.
//
// Import it from binaries that pick the driver from configuration:
//
//	import _ "github.com/ncobase/relaypage/data/all"
//
// Libraries should import only the drivers they need:
//
//	import (
//	    _ "github.com/ncobase/relaypage/data/postgres"
//	)
package all

import (
	_ "github.com/ncobase/relaypage/data/memory"
	_ "github.com/ncobase/relaypage/data/mongodb"
	_ "github.com/ncobase/relaypage/data/mysql"
	_ "github.com/ncobase/relaypage/data/postgres"
	_ "github.com/ncobase/relaypage/data/sqlite"
)
