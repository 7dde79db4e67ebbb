package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/prismnet/prismd/domain/consensus/model/blocks"
	"github.com/prismnet/prismd/domain/consensus/model/externalapi"
	"github.com/prismnet/prismd/domain/consensus/utils/hashes"
	"github.com/prismnet/prismd/version"
)

const (
	defaultLogFilename    = "prismhash.log"
	defaultErrLogFilename = "prismhash_err.log"
	defaultLogLevel       = "info"
	defaultHeaderCache    = 100
)

type configFlags struct {
	ShowVersion      bool     `short:"V" long:"version" description:"Display version information and exit"`
	VoterHash        string   `long:"voterhash" description:"Voter hash of the header. Defaults to the hash of the given votes and parent links"`
	ProposalHash     string   `long:"proposalhash" description:"Proposal hash of the header"`
	TransactionsHash string   `long:"txhash" description:"Transactions hash of the header. Defaults to the hash of an empty transaction list"`
	Nonce            uint32   `long:"nonce" description:"Nonce of the header"`
	Votes            []string `long:"vote" description:"A vote in the form LEVEL:HASH. May be repeated, order is significant"`
	ParentLinks      []string `long:"parent" description:"A voter parent link. May be repeated, the first one is the voter chain parent"`
	ProposerParent   string   `long:"proposerparent" description:"Proposer parent of the block. Enables printing the derived graph edges"`
	Edge             string   `long:"edge" description:"Print the reverse of the edge kind with the given label"`
	DBDir            string   `long:"dbdir" description:"Store the header and the derived edges in the LevelDB database at this directory"`
	Remove           bool     `long:"remove" description:"Remove the derived edges from the database at --dbdir instead of storing them"`
	LogDir           string   `long:"logdir" description:"Directory to log output"`
	LogLevel         string   `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
}

// config holds configFlags together with the values parsed out of them.
type config struct {
	*configFlags

	header         *blocks.BlockHeader
	metadata       *blocks.VoterMetadata
	proposerParent *externalapi.DomainHash
	edgeKind       *externalapi.EdgeKind
	logFile        string
	errLogFile     string
}

func parseConfig(args []string) (*config, error) {
	cfgFlags := &configFlags{
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfgFlags, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.ParseArgs(args)

	// Show the version and exit if the version flag was specified.
	if cfgFlags.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	return resolveConfig(cfgFlags)
}

func resolveConfig(cfgFlags *configFlags) (*config, error) {
	cfg := &config{configFlags: cfgFlags}

	metadata := &blocks.VoterMetadata{}
	for _, voteString := range cfgFlags.Votes {
		vote, err := parseVote(voteString)
		if err != nil {
			return nil, err
		}
		metadata.Votes = append(metadata.Votes, vote)
	}
	if len(cfgFlags.ParentLinks) > 0 {
		parentLinks, err := hashes.FromStrings(cfgFlags.ParentLinks)
		if err != nil {
			return nil, errors.Wrap(err, "invalid --parent")
		}
		metadata.ParentLinks = parentLinks
	}
	cfg.metadata = metadata

	voterHash, err := parseHashOrDefault(cfgFlags.VoterHash, "--voterhash", metadata.Hash())
	if err != nil {
		return nil, err
	}
	proposalHash, err := parseHashOrDefault(cfgFlags.ProposalHash, "--proposalhash", externalapi.ZeroHash)
	if err != nil {
		return nil, err
	}
	transactionsHash, err := parseHashOrDefault(cfgFlags.TransactionsHash, "--txhash", blocks.TransactionsHash(nil))
	if err != nil {
		return nil, err
	}
	cfg.header = blocks.NewBlockHeader(voterHash, proposalHash, transactionsHash, cfgFlags.Nonce)

	if cfgFlags.ProposerParent != "" {
		proposerParent, err := externalapi.NewDomainHashFromString(cfgFlags.ProposerParent)
		if err != nil {
			return nil, errors.Wrap(err, "invalid --proposerparent")
		}
		cfg.proposerParent = &proposerParent
	}
	if cfgFlags.DBDir != "" && cfg.proposerParent == nil {
		return nil, errors.New("--dbdir requires --proposerparent")
	}
	if cfgFlags.Remove && cfgFlags.DBDir == "" {
		return nil, errors.New("--remove requires --dbdir")
	}

	if cfgFlags.Edge != "" {
		edgeKind, ok := externalapi.EdgeKindFromString(cfgFlags.Edge)
		if !ok {
			return nil, errors.Errorf("unknown edge label %s", cfgFlags.Edge)
		}
		cfg.edgeKind = &edgeKind
	}

	if cfgFlags.LogDir != "" {
		cfg.logFile = filepath.Join(cfgFlags.LogDir, defaultLogFilename)
		cfg.errLogFile = filepath.Join(cfgFlags.LogDir, defaultErrLogFilename)
	}

	return cfg, nil
}

func parseHashOrDefault(hashString string, flagName string, defaultHash externalapi.DomainHash) (
	externalapi.DomainHash, error) {

	if hashString == "" {
		return defaultHash, nil
	}
	hash, err := externalapi.NewDomainHashFromString(hashString)
	if err != nil {
		return externalapi.DomainHash{}, errors.Wrapf(err, "invalid %s", flagName)
	}
	return hash, nil
}

// parseVote parses a vote given as LEVEL:HASH.
func parseVote(voteString string) (blocks.Vote, error) {
	parts := strings.Split(voteString, ":")
	if len(parts) != 2 {
		return blocks.Vote{}, errors.Errorf("invalid --vote %s, expected LEVEL:HASH", voteString)
	}
	level, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return blocks.Vote{}, errors.Wrapf(err, "invalid level in --vote %s", voteString)
	}
	hash, err := externalapi.NewDomainHashFromString(parts[1])
	if err != nil {
		return blocks.Vote{}, errors.Wrapf(err, "invalid hash in --vote %s", voteString)
	}
	return blocks.Vote{Level: level, BlockHash: hash}, nil
}
