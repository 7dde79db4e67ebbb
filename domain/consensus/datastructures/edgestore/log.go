package edgestore

import "github.com/prismnet/prismd/infrastructure/logger"

var log = logger.RegisterSubSystem("EDGS")
