package blockheaderstore

import "github.com/prismnet/prismd/infrastructure/logger"

var log = logger.RegisterSubSystem("BHST")
