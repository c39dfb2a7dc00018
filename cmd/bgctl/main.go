// Copyright 2025 Blobgate Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blobgate/blobgate/internal/bootstrap"
	"github.com/blobgate/blobgate/internal/conf"
	"github.com/blobgate/blobgate/pkg/storage"
	"github.com/blobgate/blobgate/pkg/version"
)

var (
	configFile   string
	providerName string
	outputFile   string
	contentType  string
)

var rootCmd = &cobra.Command{
	Use:   "bgctl",
	Short: "bgctl is the blobgate command line tool",
	Long:  "bgctl talks to the configured storage backends directly, using the same config file as the blobgate server",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

// newDispatch builds a dispatch from the config file, the same way the
// server does at startup.
func newDispatch() (*storage.Dispatch, error) {
	appConf := conf.NewConf(configFile)
	registry, err := bootstrap.BuildRegistry(appConf.Providers)
	if err != nil {
		return nil, err
	}
	return storage.NewDispatch(registry), nil
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatch, err := newDispatch()
		if err != nil {
			return err
		}
		registry := dispatch.Registry()
		active := registry.ActiveName()
		for _, name := range registry.Names() {
			marker := " "
			if name == active {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file to the active or named provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatch, err := newDispatch()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		opts := &storage.UploadOptions{
			Filename:    filepath.Base(args[0]),
			ContentType: contentType,
		}

		var result *storage.UploadResult
		if providerName == "" {
			result, err = dispatch.Upload(context.Background(), data, opts)
		} else {
			result, err = dispatch.UploadTo(context.Background(), providerName, data, opts)
		}
		if err != nil {
			return err
		}
		fmt.Println(result.URL)
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a blob to a local file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatch, err := newDispatch()
		if err != nil {
			return err
		}

		var data []byte
		if providerName == "" {
			data, err = dispatch.Download(context.Background(), args[0])
		} else {
			data, err = dispatch.DownloadFrom(context.Background(), providerName, args[0])
		}
		if err != nil {
			return err
		}

		if outputFile == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(outputFile, data, 0o644)
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <url>",
	Short: "Probe whether a blob exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatch, err := newDispatch()
		if err != nil {
			return err
		}

		var found bool
		if providerName == "" {
			found, err = dispatch.Exists(context.Background(), args[0])
		} else {
			found, err = dispatch.ExistsIn(context.Background(), providerName, args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(found)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Delete a blob",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatch, err := newDispatch()
		if err != nil {
			return err
		}

		var result *storage.DeleteResult
		if providerName == "" {
			result, err = dispatch.Delete(context.Background(), args[0])
		} else {
			result, err = dispatch.DeleteFrom(context.Background(), providerName, args[0])
		}
		if err != nil {
			return err
		}
		if result.Message != "" {
			fmt.Println(result.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path")
	rootCmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "", "provider name, defaults to the active provider")
	downloadCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file, defaults to stdout")
	uploadCmd.Flags().StringVar(&contentType, "content-type", "", "content type of the uploaded file")

	rootCmd.AddCommand(providersCmd, uploadCmd, downloadCmd, existsCmd, deleteCmd, version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
