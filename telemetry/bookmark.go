package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFeedingFrenzy BookmarkType = "feeding_frenzy"
	BookmarkWastedFood    BookmarkType = "wasted_food"
	BookmarkFoodPileup    BookmarkType = "food_pileup"
	BookmarkQuietTank     BookmarkType = "quiet_tank"
)

// quietWindows is how many consecutive empty windows make a quiet tank.
const quietWindows = 5

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        uint64
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the tank.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	quietCount int // consecutive windows with no food at all
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Frenzy: eaten > 2x rolling average
	if b := bd.checkFeedingFrenzy(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	// Wasted food: more pellets faded than were eaten
	if b := bd.checkWastedFood(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	// Pileup: food left > 3x rolling average
	if b := bd.checkFoodPileup(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkQuietTank(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFeedingFrenzy(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Eaten < 5 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Eaten
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.Eaten) <= avg*2.0 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkFeedingFrenzy,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d pellets eaten, %.1fx average (%.1f)", stats.Eaten, float64(stats.Eaten)/avg, avg),
	}
}

func (bd *BookmarkDetector) checkWastedFood(stats WindowStats) *Bookmark {
	if stats.Expired < 5 || stats.Expired <= stats.Eaten {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkWastedFood,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d pellets faded, only %d eaten (eat rate %.2f)", stats.Expired, stats.Eaten, stats.EatRate),
	}
}

func (bd *BookmarkDetector) checkFoodPileup(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.FoodLeft < 20 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.FoodLeft
	}
	avg := float64(total) / float64(len(history))
	if float64(stats.FoodLeft) <= avg*3.0 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkFoodPileup,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d pellets in the water, average %.1f", stats.FoodLeft, avg),
	}
}

// checkQuietTank fires once when the tank has had no food for
// quietWindows windows in a row.
func (bd *BookmarkDetector) checkQuietTank(stats WindowStats) *Bookmark {
	if stats.Dropped > 0 || stats.FoodLeft > 0 || stats.Eaten > 0 || stats.Expired > 0 {
		bd.quietCount = 0
		return nil
	}
	bd.quietCount++
	if bd.quietCount != quietWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkQuietTank,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No food for %d windows", quietWindows),
	}
}
