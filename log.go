package autocleaner

import "github.com/juju/loggo"

var logger = loggo.GetLogger("autocleaner")
