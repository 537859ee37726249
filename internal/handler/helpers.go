package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt reads an int query parameter with a default
func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// paramUint64 reads a uint64 path parameter, 0 when malformed
func paramUint64(c *gin.Context, key string) uint64 {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
