//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/deskhive/internal/domain"
)

type ticketPayload struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	StatusCode   int    `json:"status_code"`
	ClientID     string `json:"client_id"`
	SpecialistID string `json:"specialist_id"`
}

type pagePayload struct {
	Items      []ticketPayload `json:"items"`
	NextCursor string          `json:"next_cursor"`
	HasMore    bool            `json:"has_more"`
}

type recsPayload struct {
	IsNovel              bool `json:"is_novel"`
	MaxSimilarityPercent int  `json:"max_similarity_percent"`
	Recommendations      []struct {
		KBItemID          string `json:"kb_item_id"`
		Rank              int    `json:"rank"`
		SimilarityPercent int    `json:"similarity_percent"`
		Problem           string `json:"problem"`
		Solution          string `json:"solution"`
	} `json:"recommendations"`
}

// TestE2E_Authentication tests login and identity resolution
func TestE2E_Authentication(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	user := env.CreateUser(domain.RoleClient)

	t.Run("login with valid credentials", func(t *testing.T) {
		resp, err := env.Post("/api/login", map[string]string{
			"email":    user.Email,
			"password": DemoPassword,
		}, "")
		require.NoError(t, err)

		var got struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "user", got.Role)
	})

	t.Run("login with wrong password fails", func(t *testing.T) {
		_, err := env.Post("/api/login", map[string]string{
			"email":    user.Email,
			"password": "wrong-password",
		}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("users/me returns the authenticated account", func(t *testing.T) {
		resp, err := env.Get("/api/users/me", user.ID)
		require.NoError(t, err)

		var got struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("unknown user ID returns 401", func(t *testing.T) {
		_, err := env.Get("/api/users/me", "5b0c815d-57b3-4f36-a8ba-000000000000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})
}

// TestE2E_TicketLifecycle walks a ticket from creation to closure
func TestE2E_TicketLifecycle(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	client := env.CreateUser(domain.RoleClient)
	specialist := env.CreateUser(domain.RoleSpecialist)

	var ticketID string

	t.Run("client creates a ticket", func(t *testing.T) {
		resp, err := env.Post("/api/tickets", map[string]string{
			"description":  "Не работает корпоративная почта, письма не отправляются",
			"contact_info": "кабинет 301",
		}, client.ID)
		require.NoError(t, err)

		var ticket ticketPayload
		require.NoError(t, json.Unmarshal(resp.Data, &ticket))
		assert.NotEmpty(t, ticket.ID)
		assert.Equal(t, "open", ticket.Status)
		assert.Equal(t, 1, ticket.StatusCode)
		assert.Equal(t, client.ID, ticket.ClientID)
		ticketID = ticket.ID
	})

	t.Run("ticket appears in the open queue", func(t *testing.T) {
		resp, err := env.Get("/api/tickets/open", specialist.ID)
		require.NoError(t, err)

		var page pagePayload
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, ticketID, page.Items[0].ID)
	})

	t.Run("specialist takes the ticket", func(t *testing.T) {
		resp, err := env.Put(fmt.Sprintf("/api/tickets/%s/assign", ticketID), nil, specialist.ID)
		require.NoError(t, err)

		var ticket ticketPayload
		require.NoError(t, json.Unmarshal(resp.Data, &ticket))
		assert.Equal(t, "in_work", ticket.Status)
		assert.Equal(t, specialist.ID, ticket.SpecialistID)
	})

	t.Run("second assign is rejected", func(t *testing.T) {
		rival := env.CreateUser(domain.RoleSpecialist)
		_, err := env.Put(fmt.Sprintf("/api/tickets/%s/assign", ticketID), nil, rival.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "409")
	})

	t.Run("specialist resolves with a new solution", func(t *testing.T) {
		resp, err := env.Post(fmt.Sprintf("/api/tickets/%s/resolve", ticketID), map[string]any{
			"used_kb":          false,
			"applied_solution": "Перезапустить почтовый клиент и очистить кэш учетной записи",
		}, specialist.ID)
		require.NoError(t, err)

		var out struct {
			Ticket    ticketPayload `json:"ticket"`
			AddedToKB bool          `json:"added_to_kb"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &out))
		assert.Equal(t, "done", out.Ticket.Status)
		assert.True(t, out.AddedToKB)
	})

	t.Run("solution landed in the knowledge base", func(t *testing.T) {
		admin := env.CreateUser(domain.RoleAdmin)
		resp, err := env.Get("/api/knowledge", admin.ID)
		require.NoError(t, err)

		var items []struct {
			Problem         string `json:"problem"`
			IsAutoGenerated bool   `json:"is_auto_generated"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.Len(t, items, 1)
		assert.True(t, items[0].IsAutoGenerated)
		assert.Contains(t, items[0].Problem, "почта")
	})

	t.Run("client rejects the fix", func(t *testing.T) {
		resp, err := env.Post(fmt.Sprintf("/api/tickets/%s/confirm", ticketID), map[string]bool{
			"confirmed": false,
		}, client.ID)
		require.NoError(t, err)

		var ticket ticketPayload
		require.NoError(t, json.Unmarshal(resp.Data, &ticket))
		assert.Equal(t, "in_work", ticket.Status)
	})

	t.Run("rejected ticket stays off the open queue", func(t *testing.T) {
		rival := env.CreateUser(domain.RoleSpecialist)
		_, err := env.Put(fmt.Sprintf("/api/tickets/%s/assign", ticketID), nil, rival.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "409")
	})

	t.Run("specialist resolves again and client confirms", func(t *testing.T) {
		_, err := env.Post(fmt.Sprintf("/api/tickets/%s/resolve", ticketID), map[string]any{
			"used_kb":          false,
			"applied_solution": "Пересоздать профиль почты",
		}, specialist.ID)
		require.NoError(t, err)

		resp, err := env.Post(fmt.Sprintf("/api/tickets/%s/confirm", ticketID), map[string]bool{
			"confirmed": true,
		}, client.ID)
		require.NoError(t, err)

		var ticket ticketPayload
		require.NoError(t, json.Unmarshal(resp.Data, &ticket))
		assert.Equal(t, "closed", ticket.Status)
		assert.Equal(t, 4, ticket.StatusCode)
	})

	t.Run("closed ticket is visible to its client", func(t *testing.T) {
		resp, err := env.Get("/api/tickets/my", client.ID)
		require.NoError(t, err)

		var page pagePayload
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "closed", page.Items[0].Status)
	})
}

// TestE2E_Recommendations tests knowledge matching against a seeded corpus
func TestE2E_Recommendations(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	client := env.CreateUser(domain.RoleClient)
	specialist := env.CreateUser(domain.RoleSpecialist)

	seeded := env.SeedKnowledge(
		"Принтер не печатает документы",
		"Проверить подключение, очередь печати и драйвер",
		2,
	)
	env.SeedKnowledge(
		"Не включается компьютер",
		"Проверить питание и кабель",
		5,
	)

	createTicket := func(description string) string {
		resp, err := env.Post("/api/tickets", map[string]string{"description": description}, client.ID)
		require.NoError(t, err)
		var ticket ticketPayload
		require.NoError(t, json.Unmarshal(resp.Data, &ticket))
		_, err = env.Put(fmt.Sprintf("/api/tickets/%s/assign", ticket.ID), nil, specialist.ID)
		require.NoError(t, err)
		return ticket.ID
	}

	t.Run("similar problem gets a recommendation", func(t *testing.T) {
		ticketID := createTicket("Принтер в бухгалтерии не печатает совсем")

		resp, err := env.Get(fmt.Sprintf("/api/tickets/%s/recommendations", ticketID), specialist.ID)
		require.NoError(t, err)

		var recs recsPayload
		require.NoError(t, json.Unmarshal(resp.Data, &recs))
		assert.False(t, recs.IsNovel)
		require.NotEmpty(t, recs.Recommendations)
		assert.Equal(t, seeded.ID, recs.Recommendations[0].KBItemID)
		assert.Equal(t, 1, recs.Recommendations[0].Rank)
		assert.Greater(t, recs.MaxSimilarityPercent, 0)

		t.Run("accepting the recommendation bumps its frequency", func(t *testing.T) {
			_, err := env.Post(fmt.Sprintf("/api/tickets/%s/resolve", ticketID), map[string]any{
				"used_kb":        true,
				"accepted_kb_id": seeded.ID,
			}, specialist.ID)
			require.NoError(t, err)

			admin := env.CreateUser(domain.RoleAdmin)
			itemResp, err := env.Get(fmt.Sprintf("/api/knowledge/%s", seeded.ID), admin.ID)
			require.NoError(t, err)

			var item struct {
				Frequency int `json:"frequency"`
			}
			require.NoError(t, json.Unmarshal(itemResp.Data, &item))
			assert.Equal(t, 3, item.Frequency)
		})
	})

	t.Run("unrelated problem is novel", func(t *testing.T) {
		ticketID := createTicket("Сломался кондиционер в переговорной комнате")

		resp, err := env.Get(fmt.Sprintf("/api/tickets/%s/recommendations", ticketID), specialist.ID)
		require.NoError(t, err)

		var recs recsPayload
		require.NoError(t, json.Unmarshal(resp.Data, &recs))
		assert.True(t, recs.IsNovel)
		assert.Empty(t, recs.Recommendations)
	})
}

// TestE2E_RoleEnforcement tests that role checks hold across the API
func TestE2E_RoleEnforcement(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	client := env.CreateUser(domain.RoleClient)
	specialist := env.CreateUser(domain.RoleSpecialist)
	admin := env.CreateUser(domain.RoleAdmin)

	t.Run("client cannot browse the open queue", func(t *testing.T) {
		_, err := env.Get("/api/tickets/open", client.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("client cannot read the knowledge base", func(t *testing.T) {
		_, err := env.Get("/api/knowledge", client.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("specialist cannot read stats", func(t *testing.T) {
		_, err := env.Get("/api/stats", specialist.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("admin reads stats", func(t *testing.T) {
		resp, err := env.Get("/api/stats", admin.ID)
		require.NoError(t, err)

		var stats struct {
			TicketsTotal int `json:"tickets_total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &stats))
		assert.Equal(t, 0, stats.TicketsTotal)
	})

	t.Run("another client cannot read a foreign ticket", func(t *testing.T) {
		resp, err := env.Post("/api/tickets", map[string]string{
			"description": "Не открывается общий диск отдела",
		}, client.ID)
		require.NoError(t, err)

		var ticket ticketPayload
		require.NoError(t, json.Unmarshal(resp.Data, &ticket))

		stranger := env.CreateUser(domain.RoleClient)
		_, err = env.Get(fmt.Sprintf("/api/tickets/%s", ticket.ID), stranger.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}

// TestE2E_CLIWorkflow tests the CLI commands end-to-end
func TestE2E_CLIWorkflow(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()
	env.BuildBinaries()

	client := env.CreateUser(domain.RoleClient)
	specialist := env.CreateUser(domain.RoleSpecialist)

	var ticketID string

	t.Run("deskhive whoami resolves the account", func(t *testing.T) {
		out, err := env.RunDeskhive(client.ID, "whoami")
		require.NoError(t, err, out)
		assert.Contains(t, out, client.Email)
	})

	t.Run("deskhive create opens a ticket", func(t *testing.T) {
		out, err := env.RunDeskhive(client.ID, "create",
			"Не подключается VPN из дома, ошибка авторизации", "--output")
		require.NoError(t, err, out)

		var ticket ticketPayload
		require.NoError(t, json.Unmarshal([]byte(out), &ticket))
		assert.Equal(t, "open", ticket.Status)
		ticketID = ticket.ID
	})

	t.Run("deskhive list shows the ticket", func(t *testing.T) {
		out, err := env.RunDeskhive(client.ID, "list", "--queue", "my")
		require.NoError(t, err, out)
		assert.Contains(t, out, ticketID)
	})

	t.Run("deskhive assign takes the ticket", func(t *testing.T) {
		out, err := env.RunDeskhive(specialist.ID, "assign", ticketID)
		require.NoError(t, err, out)
		assert.Contains(t, out, "in_work")
	})

	t.Run("deskhive resolve closes the work", func(t *testing.T) {
		out, err := env.RunDeskhive(specialist.ID, "resolve", ticketID,
			"--solution", "Обновить клиент VPN и переустановить сертификат")
		require.NoError(t, err, out)
		assert.Contains(t, out, "done")
		assert.Contains(t, out, "knowledge base")
	})

	t.Run("deskhive confirm closes the ticket", func(t *testing.T) {
		out, err := env.RunDeskhive(client.ID, "confirm", ticketID)
		require.NoError(t, err, out)
		assert.Contains(t, out, "closed")
	})

	t.Run("deskhive kb list shows the learned solution", func(t *testing.T) {
		admin := env.CreateUser(domain.RoleAdmin)
		out, err := env.RunDeskhive(admin.ID, "kb", "list")
		require.NoError(t, err, out)
		assert.Contains(t, out, "VPN")
	})

	t.Run("deskhive get denies a foreign ticket", func(t *testing.T) {
		stranger := env.CreateUser(domain.RoleClient)
		out, err := env.RunDeskhive(stranger.ID, "get", ticketID)
		require.Error(t, err)
		assert.True(t, strings.Contains(out, "403") || strings.Contains(out, "forbidden"), out)
	})
}
