// Copyright (C) 2020 The demosaic authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abcouwer-jpl/demosaic/internal/job"
)

// Serve runs the REST API on the given port. Jobs reference files on
// the server's filesystem, like the CLI does.
func Serve(port int) error {
	r := NewRouter()
	return r.Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with all API routes registered.
func NewRouter() *gin.Engine {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/demosaic", postDemosaic)
		}
	}
	return r
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

type postDemosaicArgs struct {
	Jobs []job.Job `json:"jobs"`
}

// postDemosaic runs a batch of demosaic jobs, streaming the log back
// as plain text. Jobs run one after another; rows within a job are
// already spread across all hardware threads.
func postDemosaic(c *gin.Context) {
	logWriter := c.Writer
	var args postDemosaicArgs
	if err := c.ShouldBind(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(args.Jobs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no jobs given"})
		return
	}

	header := logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	if err := printArgs(logWriter, "Arguments:\n", "\n", args); err != nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}

	for i := range args.Jobs {
		if err := args.Jobs[i].Run(logWriter); err != nil {
			fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		}
	}
	logWriter.(http.Flusher).Flush()
}
