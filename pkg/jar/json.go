package jar

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/logging"
)

// LoadJSON reads a JSON cookie export as written by browser
// extensions: an array of objects, or an object with a
// "cookies" array. Entries without a name are skipped.
// expirationDate is in (possibly fractional) unix seconds and is
// ignored for session cookies.
func (l *Loader) LoadJSON(path string) ([]*cookie.Cookie, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read JSON cookie file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON cookie file: %s", path)
	}

	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("cookies")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("JSON cookie file %s holds no cookie array", path)
	}

	var cookies []*cookie.Cookie
	index := -1
	root.ForEach(func(_, entry gjson.Result) bool {
		index++
		name := entry.Get("name")
		if !entry.IsObject() || name.Type != gjson.String || name.Str == "" {
			l.logger.Warn("skipping JSON cookie entry without a name",
				logging.StringField("path", path),
				logging.IntField("index", index),
			)
			return true
		}
		cookies = append(cookies, fromJSON(entry))
		return true
	})
	return cookies, nil
}

func fromJSON(entry gjson.Result) *cookie.Cookie {
	c := cookie.New(entry.Get("name").String(), entry.Get("value").String())
	c.Domain = entry.Get("domain").String()
	c.Path = entry.Get("path").String()
	c.Secured = entry.Get("secure").Bool()
	c.HttpOnly = entry.Get("httpOnly").Bool()
	c.Comment = entry.Get("comment").String()

	if v := entry.Get("version"); v.Exists() {
		c.Version = int(v.Int())
	}
	if v := entry.Get("maxAge"); v.Exists() {
		c.MaxAge = int(v.Int())
	}

	if exp := entry.Get("expirationDate"); exp.Exists() && !entry.Get("session").Bool() {
		secs, frac := math.Modf(exp.Float())
		c.ExpiryDate = time.Unix(int64(secs), int64(frac*1e9)).UTC()
	}
	return c
}
