// Package sampler selects a bounded, diverse subset of messages to serve
// as context for the generative-text calls, which run under a hard
// context-size budget. Three strategies are blended: temporal-stratified,
// activity-hotspot and quality-scored.
package sampler

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/chatreveal/chatscope/internal/chatlog"
)

const (
	numBuckets    = 5
	windowSize    = 20
	windowStride  = 5
	temporalShare = 0.30
	hotspotShare  = 0.40
	qualityShare  = 0.30
)

var interestingWords = []string{
	"love", "hate", "amazing", "terrible", "crazy", "wtf", "omg",
	"literally", "honestly", "obviously", "actually", "seriously",
}

var humorMarkers = []string{"haha", "lol", "lmao", "rofl", "😂", "🤣", "💀"}

var engagementMarkers = []string{"haha", "lol", "omg", "wtf", "😂", "🤣"}

var interrogatives = []string{"why", "how", "what", "when", "where"}

// Sampler draws bounded samples from a preprocessed message sequence.
// The random source is injectable so tests can assert exact selections;
// the contract is diversity and bound size, not reproducibility.
type Sampler struct {
	msgs []chatlog.Message
	rng  *rand.Rand
}

// New builds a sampler over noise-filtered messages. A nil rng gets a
// time-seeded source.
func New(processed []chatlog.Message, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{msgs: processed, rng: rng}
}

// Sample returns at most n messages blended 30% temporal + 40% hotspot +
// 30% quality, deduplicated by sender plus 30-rune text prefix, shuffled.
// When n covers the whole pool, the pool is returned unmodified.
func (s *Sampler) Sample(n int) []chatlog.Message {
	if n >= len(s.msgs) {
		return s.msgs
	}

	temporal := s.temporalStratified(int(float64(n) * temporalShare))
	hotspot := s.activityHotspot(int(float64(n) * hotspotShare))
	quality := s.qualityScored(int(float64(n) * qualityShare))

	var combined []chatlog.Message
	combined = append(combined, temporal...)
	combined = append(combined, hotspot...)
	combined = append(combined, quality...)

	seen := make(map[string]bool)
	var unique []chatlog.Message
	for _, m := range combined {
		key := dedupKey(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, m)
	}

	s.rng.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}

func dedupKey(m chatlog.Message) string {
	return m.Sender + ":" + chatlog.Prefix(m.Text, 30)
}

// temporalStratified splits the sequence into five equal contiguous buckets
// and draws an even quota from each at a fixed stride, so every era of the
// chat is represented.
func (s *Sampler) temporalStratified(n int) []chatlog.Message {
	if n >= len(s.msgs) {
		return s.msgs
	}

	bucketSize := len(s.msgs) / numBuckets
	perBucket := n / numBuckets
	if perBucket < 1 {
		// Quotas under one per bucket still draw one message from each
		// bucket; the n cap below trims the excess.
		perBucket = 1
	}
	var samples []chatlog.Message

	for i := 0; i < numBuckets; i++ {
		start := i * bucketSize
		end := start + bucketSize
		if i == numBuckets-1 {
			end = len(s.msgs)
		}
		bucket := s.msgs[start:end]

		if len(bucket) <= perBucket {
			samples = append(samples, bucket...)
			continue
		}
		step := len(bucket) / perBucket
		if step < 1 {
			step = 1
		}
		for j := 0; j < len(bucket) && len(samples) < n; j += step {
			samples = append(samples, bucket[j])
		}
	}
	return samples
}

// activityHotspot scores sliding windows by sender diversity, message
// length and engagement signals, then pulls short randomly-positioned
// sub-threads out of the hottest windows so replies keep their neighbors.
func (s *Sampler) activityHotspot(n int) []chatlog.Message {
	if n >= len(s.msgs) {
		return s.msgs
	}

	type hotspot struct {
		score  float64
		window []chatlog.Message
	}
	var hotspots []hotspot

	for i := 0; i+windowSize < len(s.msgs); i += windowStride {
		window := s.msgs[i : i+windowSize]

		senders := make(map[string]bool)
		totalLen := 0
		for _, m := range window {
			senders[m.Sender] = true
			totalLen += len(m.Text)
		}
		score := float64(len(senders)) * 10
		avgLen := float64(totalLen) / float64(len(window))
		if avgLen/5 < 20 {
			score += avgLen / 5
		} else {
			score += 20
		}

		for _, m := range window {
			text := strings.ToLower(m.Text)
			if strings.Contains(text, "?") {
				score += 5
			}
			for _, marker := range engagementMarkers {
				if strings.Contains(text, marker) {
					score += 3
					break
				}
			}
		}

		hotspots = append(hotspots, hotspot{score: score, window: window})
	}

	sort.SliceStable(hotspots, func(i, j int) bool { return hotspots[i].score > hotspots[j].score })

	var samples []chatlog.Message
	threadsNeeded := n / 3
	if threadsNeeded < 1 {
		threadsNeeded = 1
	}
	if threadsNeeded > len(hotspots) {
		threadsNeeded = len(hotspots)
	}

	for _, h := range hotspots[:threadsNeeded] {
		if len(samples) >= n {
			break
		}
		maxStart := len(h.window) - 4
		if maxStart < 1 {
			maxStart = 1
		}
		threadStart := s.rng.Intn(maxStart)
		threadLen := 2 + s.rng.Intn(3) // 2-4 consecutive messages
		end := threadStart + threadLen
		if end > len(h.window) {
			end = len(h.window)
		}
		samples = append(samples, h.window[threadStart:end]...)
	}

	if len(samples) > n {
		samples = samples[:n]
	}
	return samples
}

// qualityScored ranks every message by a length curve plus bonuses for
// questions, interrogative words, emotionally charged vocabulary and
// laughter markers, then takes the top quota.
func (s *Sampler) qualityScored(n int) []chatlog.Message {
	type scored struct {
		score float64
		msg   chatlog.Message
	}
	items := make([]scored, 0, len(s.msgs))

	for _, m := range s.msgs {
		text := m.Text
		lower := strings.ToLower(text)
		length := float64(len(text))

		score := length / 8
		if score > 25 {
			score = 25
		}
		if length > 200 {
			score -= (length - 200) / 10
		}

		if strings.Contains(text, "?") {
			score += 15
		}
		for _, w := range interrogatives {
			if strings.Contains(lower, w) {
				score += 8
				break
			}
		}
		for _, w := range interestingWords {
			if strings.Contains(lower, w) {
				score += 3
			}
		}
		for _, h := range humorMarkers {
			if strings.Contains(lower, h) {
				score += 4
			}
		}

		items = append(items, scored{score: score, msg: m})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })
	if n > len(items) {
		n = len(items)
	}
	out := make([]chatlog.Message, n)
	for i := 0; i < n; i++ {
		out[i] = items[i].msg
	}
	return out
}
