package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	payload "github.com/arjunsk/cometbench/pkg/a_payload"
	sink "github.com/arjunsk/cometbench/pkg/c_sink"
	workload "github.com/arjunsk/cometbench/pkg/d_workload"
	"github.com/arjunsk/cometbench/pkg/y/config"
	"github.com/arjunsk/cometbench/pkg/y/entry"
	"github.com/arjunsk/cometbench/pkg/y/logging"
)

var log = logging.New("[payload_server] ")

// maxFill bounds a single /fill request.
const maxFill = 64 << 20

func main() {
	configPath := flag.String("config", "", "generator config (.yaml, .yml or .properties)")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: ./payload_server -config bench.yaml [-addr :8080]\n")
		os.Exit(2)
	}

	props, err := config.LoadFile(*configPath)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	cfg, err := workload.ConfigFromProps(props)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	gen, err := payload.Load(cfg.Props, cfg.GeneratorKey)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	dst := sink.New(sink.MBtree, cfg.TTL)
	defer dst.Close()

	r := NewRouter(payload.NewSource(gen, cfg.Seed), dst)
	log.Info("Started Server with %s generator on %s", props[cfg.GeneratorKey], *addr)
	if err := r.Run(*addr); err != nil {
		panic(err)
	}
}

// NewRouter serves payloads from src and stores uploaded payloads in dst.
// src is shared by all requests, so fills are serialized.
func NewRouter(src *payload.Source, dst sink.Sink) *gin.Engine {
	var mu sync.Mutex

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/fill/:size", func(c *gin.Context) {
		size, err := strconv.Atoi(c.Param("size"))
		if err != nil || size < 0 || size > maxFill {
			c.String(http.StatusBadRequest, "invalid size %q", c.Param("size"))
			return
		}
		mu.Lock()
		val := src.Next(size)
		mu.Unlock()
		c.Data(http.StatusOK, "application/octet-stream", val)
	})

	r.GET("/estimate", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"est_max_compression": src.EstMaxCompression()})
	})

	r.POST("/put/:key", func(c *gin.Context) {
		key := c.Param("key")
		byteBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "%v", err)
			return
		}
		dst.Put(key, byteBody)
		c.Data(http.StatusOK, "application/octet-stream", nil)
	})

	r.GET("/get/:key", func(c *gin.Context) {
		val := dst.Get(c.Param("key"))
		if val == nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "application/octet-stream", val)
	})

	r.GET("/scan/:key/:count", func(c *gin.Context) {
		count, err := strconv.Atoi(c.Param("count"))
		if err != nil || count < 0 {
			c.String(http.StatusBadRequest, "invalid count %q", c.Param("count"))
			return
		}
		items := dst.Scan(c.Param("key"), count)
		c.Data(http.StatusOK, "application/octet-stream", entry.ListToByteArray(items))
	})

	return r
}
