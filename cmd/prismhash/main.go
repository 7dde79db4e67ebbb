package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prismnet/prismd/domain/consensus/datastructures/blockheaderstore"
	"github.com/prismnet/prismd/domain/consensus/datastructures/edgestore"
	"github.com/prismnet/prismd/domain/consensus/model/blocks"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/processes/graphbuilder"
	"github.com/prismnet/prismd/infrastructure/db/database/ldb"
	"github.com/prismnet/prismd/infrastructure/logger"
	"github.com/prismnet/prismd/util/panics"
)

func main() {
	defer panics.HandlePanic(log)

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	if cfg.logFile != "" {
		err = logger.InitLog(cfg.logFile, cfg.errLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing the logger: %s\n", err)
			os.Exit(1)
		}
		defer logger.BackendLog.Close()
	}
	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --loglevel: %s\n", err)
		os.Exit(1)
	}

	err = report(os.Stdout, cfg)
	if err != nil {
		panics.Exit(log, fmt.Sprintf("%+v", err))
	}
}

// report prints the commitments of the configured voter block and its
// graph edges. When a database directory is configured, the header and
// the edges are stored there as well.
func report(w io.Writer, cfg *config) error {
	block := blocks.NewVoterBlock(cfg.header, nil, cfg.metadata)

	fmt.Fprintf(w, "voter metadata hash: %s\n", cfg.metadata.Hash())
	fmt.Fprintf(w, "header hash: %s\n", block.Hash())
	err := block.CheckCommitments()
	if err != nil {
		fmt.Fprintf(w, "warning: %s\n", err)
	}

	if cfg.edgeKind != nil {
		fmt.Fprintf(w, "edge %s reverses to %s\n", cfg.edgeKind, cfg.edgeKind.Reverse())
	}

	if cfg.proposerParent == nil {
		return nil
	}
	edges := graphbuilder.VoterBlockEdges(block, *cfg.proposerParent)
	fmt.Fprintln(w, "edges:")
	for _, edge := range graphbuilder.WithReverses(edges) {
		fmt.Fprintf(w, "  %s\n", edge)
	}

	if cfg.DBDir == "" {
		return nil
	}
	return store(w, cfg.DBDir, block.Header(), edges, cfg.Remove)
}

// store inserts the header and edges into the database at dbDir. When
// remove is set, the edges are removed from it instead and the header is
// left untouched.
func store(w io.Writer, dbDir string, header *blocks.BlockHeader, edges []externalapi.GraphEdge, remove bool) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "store")
	defer onEnd()

	db, err := ldb.NewLevelDB(dbDir)
	if err != nil {
		return err
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Error closing the database: %s", err)
		}
	}()

	headerStore, err := blockheaderstore.New(db, defaultHeaderCache)
	if err != nil {
		return err
	}
	edgeStore, err := edgestore.New(db)
	if err != nil {
		return err
	}

	if remove {
		err = edgeStore.Remove(edges...)
		if err != nil {
			return err
		}
	} else {
		err = headerStore.Insert(header)
		if err != nil {
			return err
		}
		err = edgeStore.Insert(edges...)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "stored headers: %d\n", headerStore.Count())
	fmt.Fprintf(w, "edge set commitment: %s\n", edgeStore.Commitment())
	return nil
}
