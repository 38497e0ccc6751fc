package internal

import (
	"fmt"
	"os"
)

// Version is the photoatlas release version.
const Version = "0.2.0"

// PrintUsage prints the top-level help text.
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `photoatlas - multimodal search over a personal photo archive

USAGE:
    photoatlas [global options] <subcommand> [options]

GLOBAL OPTIONS:
    -config <path>    Path to config file (default: ~/.photoatlas/config/photoatlas.yaml)
    -debug            Enable debug logging
    -h, -help         Show this help
    -v, -version      Show version

SUBCOMMANDS:
    upload            Ingest a directory of images into the collection
    search            Search photos with natural language
    create-collection Create the photo collection in the vector store
    delete-collection Delete the photo collection and all stored photos
    mcp               Run an MCP stdio server exposing search_photo_albums

EXAMPLES:
    photoatlas create-collection
    photoatlas upload ~/Pictures/2024 -skip-existing
    photoatlas search "sunset over water" -location "Lisbon" -radius-km 50
    photoatlas search -all -limit 20
    photoatlas mcp

Run 'photoatlas <subcommand> -h' for subcommand options.
`)
}
