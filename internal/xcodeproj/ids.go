package xcodeproj

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// idLength is the length of an Xcode object id in hex characters.
const idLength = 24

// newID derives a 24-character upper-case hex object id from kind and seed.
// The same inputs give the same id on every run, so repeated transforms of
// the same project produce identical files; collisions are resolved by
// rehashing with a counter.
func (p *Project) newID(kind, seed string) string {
	objs, _ := p.objects()
	for n := 0; ; n++ {
		sum := sha256.Sum256([]byte("unitylink\x00" + kind + "\x00" + seed + "\x00" + strconv.Itoa(n)))
		id := strings.ToUpper(hex.EncodeToString(sum[:])[:idLength])
		if _, taken := objs[id]; !taken {
			return id
		}
	}
}
