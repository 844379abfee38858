package session

import (
	"strings"
	"testing"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/testutil"
	"github.com/jromang/picochess/internal/tree"
)

func loadSession(t *testing.T, pgn string) *GameSession {
	t.Helper()
	s := New("test", Options{})
	report := s.LoadPGN(strings.Split(pgn, "\n"))
	if !report.Clean() {
		t.Fatalf("unparsed moves %v", report.Unparsed())
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := New("abc", Options{})
	testutil.AssertEqual(t, s.ID, "abc")
	testutil.AssertEqual(t, s.FEN(), engine.InitialFEN)
	testutil.AssertTrue(t, s.Cursor().IsSet())
	testutil.AssertEqual(t, s.Tree().Len(), 1)
	testutil.AssertEqual(t, s.Status(), "White to move")
	testutil.AssertEqual(t, s.AnalysisCommand(), "position startpos")
}

func TestNavigation(t *testing.T) {
	s := loadSession(t, "1. e4 e5 2. Nf3 Nc6 *")
	testutil.AssertEqual(t, s.Current().ID, s.Tree().Root().ID, "load resyncs to the start")

	for i := 0; i < 4; i++ {
		testutil.AssertTrue(t, s.GoForward(), "forward %d", i)
	}
	testutil.AssertFalse(t, s.GoForward(), "forward past the end")
	s.GoBack()
	s.GoBack()
	testutil.AssertEqual(t, s.Current().SAN(), "e5")
	testutil.AssertEqual(t, s.Current().HalfMoveNum, 2)
	testutil.AssertEqual(t, s.FEN(), s.Current().FEN)

	s.GoToEnd()
	testutil.AssertEqual(t, s.Current().SAN(), "Nc6")

	s.GoToStart()
	testutil.AssertEqual(t, s.FEN(), engine.InitialFEN)
	testutil.AssertFalse(t, s.GoBack())
}

func TestGoToPositionMiss(t *testing.T) {
	s := loadSession(t, "1. e4 e5 *")
	s.GoForward()
	before := s.FEN()

	testutil.AssertFalse(t, s.GoToPosition("8/8/8/8/8/8/8/K6k w - - 0 1"))
	testutil.AssertFalse(t, s.Cursor().IsSet())
	testutil.AssertEqual(t, s.FEN(), before, "board keeps its position")
	testutil.AssertFalse(t, s.GoForward())
	testutil.AssertEqual(t, s.PreviousMoves(FormatSAN), "")

	s.GoToStart()
	testutil.AssertTrue(t, s.Cursor().IsSet())
}

func TestNavigate(t *testing.T) {
	s := loadSession(t, "1. e4 e5 2. Nf3 *")
	tests := []struct {
		target, fen string
		wantSAN     string
		wantErr     error
	}{
		{ToEnd, "", "Nf3", nil},
		{ToBack, "", "e5", nil},
		{ToStart, "", "", nil},
		{ToForward, "", "e4", nil},
		{ToPosition, s.Tree().Node(s.Tree().Mainline()[1]).FEN, "e5", nil},
		{ToPosition, "8/8/8/8/8/8/8/K6k w - - 0 1", "", errors.ErrUnknownPosition},
		{"sideways", "", "", errors.ErrUnknownEvent},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			err := s.Navigate(tt.target, tt.fen)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
				s.GoToStart()
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, s.Current().SAN(), tt.wantSAN)
		})
	}
}

func TestUpdateCurrentPosition(t *testing.T) {
	s := New("play", Options{})

	n, err := s.UpdateCurrentPosition("e2", "e4", chess.Off)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n.SAN(), "e4")
	testutil.AssertEqual(t, s.Tree().Len(), 2)
	testutil.AssertContains(t, s.MoveListHTML(), "e4")

	s.GoToStart()
	again, err := s.UpdateCurrentPosition("e2", "e4", chess.Off)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, again.ID, n.ID, "existing move is reused")
	testutil.AssertEqual(t, s.Tree().Len(), 2)

	s.GoToStart()
	d4, err := s.UpdateCurrentPosition("d2", "d4", chess.Off)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.Tree().Root().Children, []tree.NodeID{n.ID, d4.ID})
	testutil.AssertContains(t, s.FullGame(), "1. e4 ( 1. d4 ) *")

	_, err = s.UpdateCurrentPosition("e2", "e5", chess.Off)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertEqual(t, s.Current().ID, d4.ID, "illegal move leaves the cursor")
}

func TestUpdateCurrentPositionPromotion(t *testing.T) {
	tests := []struct {
		promotion chess.Piece
		want      string
	}{
		{chess.Off, "a8=Q+"},
		{chess.Queen, "a8=Q+"},
		{chess.Knight, "a8=N"},
		{chess.Rook, "a8=R+"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := New("promo", Options{})
			testutil.AssertNoError(t, s.NewBoard("4k3/P7/8/8/8/8/8/4K3 w - - 0 1"))
			n, err := s.UpdateCurrentPosition("a7", "a8", tt.promotion)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, n.SAN(), tt.want)
		})
	}
}

func TestUpdateCurrentPositionUnsetCursor(t *testing.T) {
	s := loadSession(t, "[White \"A\"]\n\n1. e4 e5 *")
	s.GoForward()
	afterE4 := s.FEN()
	s.GoToPosition("8/8/8/8/8/8/8/K6k w - - 0 1")

	n, err := s.UpdateCurrentPosition("g8", "f6", chess.Off)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n.SAN(), "Nf6")
	testutil.AssertEqual(t, s.Tree().Root().FEN, afterE4)
	testutil.AssertEqual(t, s.Tree().Len(), 2)
	testutil.AssertContains(t, s.MoveListHTML(), "<h5>Board game</h5>")
	testutil.AssertContains(t, s.MoveListHTML(), `<span class="gameResult">*</span>`)
}

func TestUpdateCurrentPositionUnsetCursorIllegal(t *testing.T) {
	s := loadSession(t, "[White \"A\"]\n\n1. e4 e5 2. Nf3 *")
	html := s.MoveListHTML()
	testutil.AssertFalse(t, s.GoToPosition("8/8/8/8/8/8/8/K6k w - - 0 1"))

	_, err := s.UpdateCurrentPosition("a1", "a5", chess.Off)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertEqual(t, s.Tree().Len(), 4, "game kept")
	testutil.AssertEqual(t, s.Headers(), map[string]string{"White": "A"})
	testutil.AssertEqual(t, s.MoveListHTML(), html)
	testutil.AssertFalse(t, s.Cursor().IsSet())
}

func TestLoadPGNFirstLoadWithSetup(t *testing.T) {
	const setup = "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"
	s := New("fresh", Options{})
	report := s.LoadPGN(strings.Split("[SetUp \"1\"]\n[FEN \""+setup+"\"]\n\n1. Ra7 Kd8 *", "\n"))
	testutil.AssertTrue(t, report.Clean())

	testutil.AssertTrue(t, s.Cursor().IsSet(), "first load goes to the first position")
	testutil.AssertEqual(t, s.Current().ID, s.Tree().Root().ID)
	testutil.AssertEqual(t, s.FEN(), setup)
	testutil.AssertEqual(t, s.AnalysisCommand(), "position fen "+setup)

	s.GoToEnd()
	testutil.AssertEqual(t, s.Current().SAN(), "Kd8")

	// Later loads resync to the position on the board.
	end := s.FEN()
	s.LoadPGN(strings.Split("[SetUp \"1\"]\n[FEN \""+setup+"\"]\n\n1. Ra7 Kd8 2. Ra8+ *", "\n"))
	testutil.AssertEqual(t, s.FEN(), end)
	testutil.AssertEqual(t, s.Current().SAN(), "Kd8")
}

func TestNewBoard(t *testing.T) {
	s := loadSession(t, "[White \"A\"]\n\n1. e4 e5 1-0")
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	testutil.AssertNoError(t, s.NewBoard(fen))
	testutil.AssertEqual(t, s.FEN(), fen)
	testutil.AssertEqual(t, s.Tree().Len(), 1)
	testutil.AssertEqual(t, s.Headers(), map[string]string{})
	testutil.AssertEqual(t, s.Result(), "*")
	testutil.AssertEqual(t, s.AnalysisCommand(), "position fen "+fen)

	_, err := s.UpdateCurrentPosition("e1", "g1", chess.Off)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.AnalysisCommand(), "position fen "+fen+" moves e1g1")

	testutil.AssertErrorIs(t, s.NewBoard("not a fen"), errors.ErrInvalidFEN)
	testutil.AssertEqual(t, s.Tree().Len(), 2, "bad FEN keeps the game")
}

func TestSyncPosition(t *testing.T) {
	pgn := "1. e4 e5 2. Nf3 *"
	s := loadSession(t, "1. e4 e5 *")
	full := loadSession(t, pgn)
	full.GoToEnd()
	e5 := s.Tree().Node(s.Tree().Mainline()[1]).FEN

	testutil.AssertTrue(t, s.SyncPosition(e5, pgn, false) == nil, "known position needs no reload")
	testutil.AssertEqual(t, s.Current().SAN(), "e5")
	testutil.AssertEqual(t, s.Tree().Len(), 3)

	report := s.SyncPosition(full.FEN(), pgn, false)
	testutil.AssertTrue(t, report != nil && report.Clean())
	testutil.AssertEqual(t, s.Tree().Len(), 4)
	testutil.AssertEqual(t, s.Current().SAN(), "Nf3")

	report = s.SyncPosition(e5, "1. e4 e5 2. Nc3 *", true)
	testutil.AssertTrue(t, report != nil, "reload forces an import")
	testutil.AssertEqual(t, s.Current().SAN(), "e5")
	testutil.AssertContains(t, s.FullGame(), "2. Nc3")
}

func TestSetHeaders(t *testing.T) {
	s := loadSession(t, "1. e4 *")
	s.SetHeaders(map[string]string{
		"White":    "Anand",
		"Black":    "Carlsen",
		"WhiteElo": "2780",
		"Event":    "WCh",
		"Site":     "Chennai",
		"Date":     "2013.11.09",
		"Result":   "1/2-1/2",
		"Round":    "1",
	})

	html := s.MoveListHTML()
	testutil.AssertContains(t, html, "<h4>Anand (2780) vs Carlsen (-)</h4><h5>WCh, Chennai 2013.11.09</h5>")
	testutil.AssertContains(t, html, `<span class="gameResult">1/2-1/2</span>`)
	testutil.AssertEqual(t, s.Result(), "1/2-1/2")

	pgn := s.FullGame()
	testutil.AssertTrue(t, strings.HasPrefix(pgn, "[Event \"WCh\"]\n[Site \"Chennai\"]\n[Date \"2013.11.09\"]\n[Round \"1\"]\n[White \"Anand\"]\n[Black \"Carlsen\"]\n[Result \"1/2-1/2\"]\n[WhiteElo \"2780\"]\n"), pgn)
	testutil.AssertTrue(t, strings.HasSuffix(pgn, "1. e4 1/2-1/2"), pgn)
}

func TestPreviousMoves(t *testing.T) {
	s := loadSession(t, "1. e4 e5 2. Nf3 (2. f4 exf4) Nc6 *")
	testutil.AssertEqual(t, s.PreviousMoves(FormatSAN), "")

	s.GoForward()
	s.GoForward()
	s.GoForward()
	testutil.AssertEqual(t, s.PreviousMoves(FormatSAN), "1. e4 e5 2. Nf3")
	testutil.AssertEqual(t, s.PreviousMoves(FormatUCI), "e2e4 e7e5 g1f3")
	testutil.AssertEqual(t, s.AnalysisCommand(), "position startpos moves e2e4 e7e5 g1f3")

	exf4 := s.Tree().Node(s.Tree().Node(s.Tree().Mainline()[1]).Children[1]).Children[0]
	testutil.AssertTrue(t, s.GoToPosition(s.Tree().Node(exf4).FEN))
	testutil.AssertEqual(t, s.PreviousMoves(FormatSAN), "1. e4 e5 2. f4 exf4")
	testutil.AssertEqual(t, s.PreviousMoves(FormatUCI), "e2e4 e7e5 f2f4 e5f4")
}

func TestPreviousMovesPlaceholder(t *testing.T) {
	s := New("x", Options{})
	s.LoadPGN([]string{"1. e4 e5 2. Ke8 *"})
	s.GoForward()
	s.GoForward()
	s.GoForward()
	testutil.AssertEqual(t, s.PreviousMoves(FormatSAN), "1. e4 e5 2. XKe8")
	testutil.AssertEqual(t, s.PreviousMoves(FormatUCI), "e2e4 e7e5")
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
		want string
	}{
		{"start", "*", "White to move"},
		{"black to move", "1. e4 *", "Black to move"},
		{"check", "1. e4 f6 2. Qh5+ *", "Black to move (in check)"},
		{"checkmate", "1. f3 e5 2. g4 Qh4# 0-1", "White is in checkmate"},
		{"stalemate", "[SetUp \"1\"]\n[FEN \"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\"]\n\n*", "Drawn position"},
		{"insufficient material", "[SetUp \"1\"]\n[FEN \"8/8/8/8/8/8/8/K6k w - - 0 1\"]\n\n*", "Drawn position"},
		{"threefold repetition", "1. Nf3 Nf6 2. Ng1 Ng8 3. Nf3 Nf6 4. Ng1 Ng8 *", "Drawn position"},
		{"twofold is not a draw", "1. Nf3 Nf6 2. Ng1 Ng8 *", "White to move"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadSession(t, tt.pgn)
			s.GoToEnd()
			testutil.AssertEqual(t, s.Status(), tt.want)
		})
	}
}
