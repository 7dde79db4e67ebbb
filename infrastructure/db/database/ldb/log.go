package ldb

import "github.com/prismnet/prismd/infrastructure/logger"

var log = logger.RegisterSubSystem("KVDB")
