// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	innosetup "github.com/innosetup-go/decoder"
	"github.com/spf13/cobra"
)

func prettyPrint(buf []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, buf, "", "\t"); err != nil {
		log.Println("JSON parse error: ", err)
		return string(buf)
	}
	return out.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpInstaller(filename string, cmd *cobra.Command) {
	log.Printf("processing %s", filename)

	warnings, _ := cmd.Flags().GetBool("warnings")

	ins, err := innosetup.Decode(filename, nil)
	if err != nil {
		log.Printf("error decoding %s: %s", filename, err)
		return
	}

	if !warnings {
		ins.Warnings = nil
	}

	out, err := json.Marshal(ins)
	if err != nil {
		log.Printf("error rendering %s: %s", filename, err)
		return
	}
	fmt.Println(prettyPrint(out))
}

func runDump(cmd *cobra.Command, args []string) {
	path := args[0]

	if !isDirectory(path) {
		dumpInstaller(path, cmd)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpInstaller(f, cmd)
	}
}

// newDumpCmd builds the "dump" subcommand: decode one installer (or every
// file under a directory) and render its Installer model as indented JSON.
// Rendering is deliberately kept out of the decoder package itself -- a
// separate collaborator renders it, per the out-of-scope boundary around
// pretty-printing.
func newDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Decode an installer and print its metadata as JSON",
		Long:  "Decodes the embedded metadata of an Inno Setup installer executable (or every file under a directory) and prints it as indented JSON",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDump,
	}
	dumpCmd.Flags().Bool("warnings", true, "include recoverable parse warnings in the output")
	return dumpCmd
}
