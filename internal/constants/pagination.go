package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Feed Query Parameters
const (
	QueryParamLimit  = "limit"
	QueryParamOffset = "offset"
	QueryParamSort   = "sort"
	QueryParamUserID = "userId"
)

// Default Feed Values (as strings for query parsing)
const (
	DefaultLimit  = "5"
	DefaultOffset = "0"
	DefaultSort   = "DESC"
)

// Feed limits
const (
	MinLimit = 1
	MaxLimit = 100
)

// FeedParams holds the parsed feed query parameters
type FeedParams struct {
	Limit  int    // Posts per page (default: 5)
	Offset int    // Number of posts skipped (default: 0)
	Sort   string // Creation-time order, ASC or DESC (default: DESC)
	UserID uint   // Restrict to one author, 0 = no filter
}

// ParseFeedParams parses limit/offset/sort/userId query parameters
// with the feed defaults applied for missing or malformed values.
func ParseFeedParams(c *gin.Context) FeedParams {
	limitStr := c.DefaultQuery(QueryParamLimit, DefaultLimit)
	offsetStr := c.DefaultQuery(QueryParamOffset, DefaultOffset)
	sort := c.DefaultQuery(QueryParamSort, DefaultSort)

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < MinLimit {
		limit, _ = strconv.Atoi(DefaultLimit)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = 0
	}

	if sort != "ASC" && sort != "DESC" {
		sort = DefaultSort
	}

	var userID uint
	if raw := c.Query(QueryParamUserID); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}

	return FeedParams{
		Limit:  limit,
		Offset: offset,
		Sort:   sort,
		UserID: userID,
	}
}
