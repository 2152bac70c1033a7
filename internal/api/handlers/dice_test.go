package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdp/rpg-companion/internal/testutil"
)

func TestDiceAPI_Roll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	type rollBody struct {
		DiceType      int     `json:"dice_type"`
		Result        int     `json:"result"`
		SpecialEffect *string `json:"special_effect"`
		Timestamp     *string `json:"timestamp"`
	}

	t.Run("anonymous roll works but leaves no trace", func(t *testing.T) {
		anon := ts.NewClient(t)
		resp := testutil.PostJSON(t, anon, ts.APIURL("/dice/roll"), map[string]int{"dice_type": 20})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body rollBody
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, 20, body.DiceType)
		assert.GreaterOrEqual(t, body.Result, 1)
		assert.LessOrEqual(t, body.Result, 20)
		assert.Nil(t, body.Timestamp, "anonymous rolls are not persisted")
	})

	t.Run("unsupported dice type", func(t *testing.T) {
		anon := ts.NewClient(t)
		resp := testutil.PostJSON(t, anon, ts.APIURL("/dice/roll"), map[string]int{"dice_type": 6})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid dice type")
	})

	t.Run("authenticated roll is persisted with a timestamp", func(t *testing.T) {
		_, master := testutil.NewAccountBuilder().BuildAndLogin(t, ts)

		resp := testutil.PostJSON(t, master, ts.APIURL("/dice/roll"), map[string]int{"dice_type": 100})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body rollBody
		testutil.AssertJSONResponse(t, resp, &body)
		require.NotNil(t, body.Timestamp)
	})
}

func TestDiceAPI_History(t *testing.T) {
	ts := testutil.NewTestServer(t)

	account, master := testutil.NewAccountBuilder().BuildAndLogin(t, ts)
	character, playerPassword := testutil.NewCharacterBuilder(account.ID).
		WithPlayerUsername("roller").
		Build(t, ts.DB.DB)
	player := testutil.LoginPlayer(t, ts, "roller", playerPassword)

	// Three master rolls, two player rolls.
	for i := 0; i < 3; i++ {
		resp := testutil.PostJSON(t, master, ts.APIURL("/dice/roll"), map[string]int{"dice_type": 20})
		resp.Body.Close()
	}
	for i := 0; i < 2; i++ {
		resp := testutil.PostJSON(t, player, ts.APIURL("/dice/roll"), map[string]int{"dice_type": 4})
		resp.Body.Close()
	}

	type historyBody struct {
		Rolls []map[string]interface{} `json:"rolls"`
	}

	t.Run("master sees the whole account history", func(t *testing.T) {
		resp := testutil.Get(t, master, ts.APIURL("/dice/history"))
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body historyBody
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Len(t, body.Rolls, 5)
	})

	t.Run("player sees only its own rolls", func(t *testing.T) {
		resp := testutil.Get(t, player, ts.APIURL("/dice/history"))
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body historyBody
		testutil.AssertJSONResponse(t, resp, &body)
		require.Len(t, body.Rolls, 2)
		for _, roll := range body.Rolls {
			assert.Equal(t, character.ID.String(), roll["character_id"])
		}
	})

	t.Run("anonymous history is forbidden", func(t *testing.T) {
		anon := ts.NewClient(t)
		resp := testutil.Get(t, anon, ts.APIURL("/dice/history"))
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})
}
