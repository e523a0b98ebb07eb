package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestTopFoodsFindOptions(t *testing.T) {
	opts := topFoodsFindOptions()

	if opts.Limit == nil || *opts.Limit != 6 {
		t.Fatalf("limit = %v, want 6", opts.Limit)
	}
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 1 {
		t.Fatalf("sort = %#v, want a single-key bson.D", opts.Sort)
	}
	if sort[0].Key != "purchaseCount" || sort[0].Value != -1 {
		t.Fatalf("sort = %#v, want purchaseCount descending", sort)
	}
}

func TestRateFoodRequestAcceptsZeroRating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPatch, "/storedFood/Biryani", strings.NewReader(`{"rating":0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req rateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		t.Fatalf("a zero rating must bind cleanly, got %v", err)
	}
	if req.Rating != 0 {
		t.Fatalf("rating = %d, want 0", req.Rating)
	}
}

func TestAdjustFoodCountRequestAcceptsZeroDelta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPatch, "/storedFood/foodCount/abc", strings.NewReader(`{"purchaseCount":0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req adjustFoodCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		t.Fatalf("a zero delta must bind cleanly, got %v", err)
	}
	if req.PurchaseCount != 0 {
		t.Fatalf("purchaseCount = %d, want 0", req.PurchaseCount)
	}
}

func TestRateFoodUnknownName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("responds not found and issues no write", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flavorFusionDB.storedFood", mtest.FirstBatch))

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.PATCH("/storedFood/:foodName", RateFood(mt.Client.Database("flavorFusionDB")))

		req := httptest.NewRequest(http.MethodPatch, "/storedFood/Unknown", strings.NewReader(`{"rating":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			mt.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName == "update" {
				mt.Fatal("no write may follow a failed name lookup")
			}
		}
	})
}

func TestRateFoodRecomputesCounters(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("folds the new rating into the stored counters", func(mt *mtest.T) {
		foodID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "flavorFusionDB.storedFood", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: foodID},
				{Key: "name", Value: "Biryani"},
				{Key: "totalRating", Value: int32(8)},
				{Key: "totalRatingCount", Value: int32(2)},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.PATCH("/storedFood/:foodName", RateFood(mt.Client.Database("flavorFusionDB")))

		req := httptest.NewRequest(http.MethodPatch, "/storedFood/Biryani", strings.NewReader(`{"rating":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}

		var updateCmd bson.Raw
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName == "update" {
				updateCmd = ev.Command
			}
		}
		if updateCmd == nil {
			mt.Fatal("expected an update command")
		}

		updates, err := updateCmd.Lookup("updates").Array().Values()
		if err != nil || len(updates) != 1 {
			mt.Fatalf("updates = %v (err %v), want exactly one statement", updates, err)
		}
		set := updates[0].Document().Lookup("u").Document().Lookup("$set").Document()
		if got := set.Lookup("totalRating").Int32(); got != 13 {
			mt.Fatalf("totalRating = %d, want 13", got)
		}
		if got := set.Lookup("totalRatingCount").Int32(); got != 3 {
			mt.Fatalf("totalRatingCount = %d, want 3", got)
		}
		if got := set.Lookup("averageRating").Double(); math.Abs(got-13.0/3.0) > 1e-9 {
			mt.Fatalf("averageRating = %v, want ~4.333", got)
		}
	})
}

func TestTopFoodsQueryShape(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("queries at most six items by purchase count descending", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flavorFusionDB.storedFood", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "name", Value: "Biryani"},
				{Key: "purchaseCount", Value: int32(9)},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "name", Value: "Kacchi"},
				{Key: "purchaseCount", Value: int32(4)},
			},
		))

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/topFoods", TopFoods(mt.Client.Database("flavorFusionDB")))

		req := httptest.NewRequest(http.MethodGet, "/topFoods", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var foods []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &foods); err != nil {
			mt.Fatalf("response did not decode: %v", err)
		}
		if len(foods) != 2 || foods[0]["name"] != "Biryani" {
			mt.Fatalf("unexpected leaderboard: %v", foods)
		}

		var findCmd bson.Raw
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName == "find" {
				findCmd = ev.Command
			}
		}
		if findCmd == nil {
			mt.Fatal("expected a find command")
		}
		if limit := findCmd.Lookup("limit").AsInt64(); limit != 6 {
			mt.Fatalf("limit = %d, want 6", limit)
		}
		if dir := findCmd.Lookup("sort").Document().Lookup("purchaseCount").AsInt64(); dir != -1 {
			mt.Fatalf("sort direction = %d, want -1", dir)
		}
	})
}
