package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/application/ai/aitest"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/repository"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/sqlite/sqlitetest"
)

const analysisJSON = `{"marketSize":{"value":500,"unit":"crore","growthRate":"11%"},"targetSegments":[{"name":"Offices"}],"competitors":[],"trends":["chai cafes"]}`

func setup(t *testing.T, client *aitest.Client) (*Service, string) {
	t.Helper()
	db := sqlitetest.Open(t)
	plans := repository.NewPlanRepository(db)
	p := &plan.BusinessPlan{UserID: "u1", BusinessName: "Chai Point", Industry: "Food"}
	require.NoError(t, plans.Create(context.Background(), p))

	return &Service{
		Plans:   plans,
		Reports: repository.NewMarketRepository(db),
		AI:      aiapp.NewService(client, time.Second, nil),
	}, p.ID
}

func TestGenerateAnalysisNormalizesArrays(t *testing.T) {
	svc, planID := setup(t, aitest.New("```json\n"+analysisJSON+"\n```"))

	d, err := svc.Generate(context.Background(), "u1", planID, "analysis")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Revision)
	assert.JSONEq(t, `{
		"marketSize":{"value":500,"unit":"crore","growthRate":"11%"},
		"targetSegments":[{"name":"Offices","description":"","size":""}],
		"competitors":[],
		"trends":["chai cafes"],
		"opportunities":[],
		"threats":[]
	}`, string(d.Payload))
}

func TestGenerateStrategiesUsesPriorReports(t *testing.T) {
	client := aitest.New(
		analysisJSON,
		`{"shortTerm":[],"longTerm":[],"riskMitigation":["ok",{"risk":"r1","mitigation":"m1"},{"other":"x"}]}`,
	)
	svc, planID := setup(t, client)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "u1", planID, "analysis")
	require.NoError(t, err)

	d, err := svc.Generate(ctx, "u1", planID, "strategies")
	require.NoError(t, err)
	assert.Contains(t, client.LastPrompt(), `"trends":["chai cafes"]`)
	assert.Contains(t, client.LastPrompt(), "Previous recommendations: N/A")
	assert.JSONEq(t, `{
		"shortTerm":[],"longTerm":[],"milestones":[],
		"riskMitigation":["ok",{"risk":"r1","mitigation":"m1"},"{\"other\":\"x\"}"]
	}`, string(d.Payload))
}

func TestParseFailureLeavesCachedReport(t *testing.T) {
	client := aitest.New(analysisJSON, "The market is large.")
	svc, planID := setup(t, client)
	ctx := context.Background()

	first, err := svc.Generate(ctx, "u1", planID, "analysis")
	require.NoError(t, err)

	_, err = svc.Generate(ctx, "u1", planID, "analysis")
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))

	cached, err := svc.Get(ctx, "u1", planID, "analysis")
	require.NoError(t, err)
	assert.Equal(t, first.Revision, cached.Revision)
	assert.JSONEq(t, string(first.Payload), string(cached.Payload))
}

func TestRegenerateReplacesWholesale(t *testing.T) {
	client := aitest.New(
		`{"pricingStrategy":{"approach":"premium"},"channels":[{"name":"a"}],"marketingActions":[],"quickWins":["x"]}`,
		`{"pricingStrategy":{"approach":"value"},"channels":[],"marketingActions":[]}`,
	)
	svc, planID := setup(t, client)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "u1", planID, "recommendations")
	require.NoError(t, err)
	d, err := svc.Generate(ctx, "u1", planID, "recommendations")
	require.NoError(t, err)

	assert.Equal(t, int64(2), d.Revision)
	assert.JSONEq(t, `{
		"pricingStrategy":{"approach":"value","details":"","priceRange":""},
		"channels":[],"marketingActions":[],"quickWins":[]
	}`, string(d.Payload))

	list, err := svc.List(ctx, "u1", planID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGenerateValidation(t *testing.T) {
	client := aitest.New(analysisJSON)
	svc, planID := setup(t, client)

	_, err := svc.Generate(context.Background(), "u1", planID, "forecast")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Generate(context.Background(), "u2", planID, "analysis")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, 0, client.Calls())
}
