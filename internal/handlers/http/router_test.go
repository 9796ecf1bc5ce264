package http_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Router", func() {
	var a *api

	BeforeEach(func() {
		a = newAPI()
	})

	Describe("rotas públicas", func() {
		It("GET /health responde com a mensagem traduzida", func() {
			r := a.do(http.MethodGet, "/health", "", nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKeyWithValue("message", "Social Media API is running"))
			Expect(r.body).To(HaveKeyWithValue("env", "test"))
		})

		It("rota inexistente devolve problem details 404", func() {
			r := a.do(http.MethodGet, "/api/nope", "", nil)
			Expect(r.status).To(Equal(http.StatusNotFound))
			Expect(r.body).To(HaveKeyWithValue("success", false))
			Expect(r.body).To(HaveKeyWithValue("message", "Route not found"))
			Expect(r.body).To(HaveKeyWithValue("type", "http://localhost:5000/problems/not-found"))
			Expect(r.body).To(HaveKeyWithValue("instance", "/api/nope"))
		})

		It("serve a documentação swagger", func() {
			r := a.do(http.MethodGet, "/swagger/doc.json", "", nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKey("paths"))
		})
	})

	Describe("autenticação", func() {
		It("registra, faz login e lê o próprio perfil", func() {
			alice := a.register("alice", "alice@example.com")

			r := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "secret123"})
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).To(HaveKey("token"))

			r = a.do(http.MethodGet, "/api/auth/me", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).To(HaveKeyWithValue("username", "alice"))
			Expect(r.data()).To(HaveKey("blockedUsers"))
			Expect(r.data()).NotTo(HaveKey("passwordHash"))
		})

		It("recusa rotas protegidas sem token", func() {
			r := a.do(http.MethodGet, "/api/posts", "", nil)
			Expect(r.status).To(Equal(http.StatusUnauthorized))
			Expect(r.body).To(HaveKeyWithValue("message", "Not authorized, no token"))

			r = a.do(http.MethodGet, "/api/posts", "garbage", nil)
			Expect(r.status).To(Equal(http.StatusUnauthorized))
		})

		It("valida o corpo do cadastro", func() {
			r := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "al", "email": "x", "password": "1"})
			Expect(r.status).To(Equal(http.StatusBadRequest))
			Expect(r.body["errors"]).To(HaveLen(3))
		})

		It("recusa email repetido com 400", func() {
			a.register("alice", "alice@example.com")
			r := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "alice2", "email": "alice@example.com", "password": "secret123"})
			Expect(r.status).To(Equal(http.StatusBadRequest))
		})

		It("traduz as mensagens pelo Accept-Language", func() {
			r := a.do(http.MethodGet, "/api/posts", "", nil, "Accept-Language", "pt-BR")
			Expect(r.status).To(Equal(http.StatusUnauthorized))
			Expect(r.body["message"]).NotTo(Equal("Not authorized, no token"))
		})
	})

	Describe("follow e block", func() {
		It("segue, bloqueia e esconde o perfil de quem foi bloqueado", func() {
			alice := a.register("alice", "alice@example.com")
			bob := a.register("bob", "bob@example.com")

			r := a.do(http.MethodPost, "/api/users/"+bob.id+"/follow", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKeyWithValue("message", "You are now following bob"))

			r = a.do(http.MethodPost, "/api/users/"+bob.id+"/follow", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusBadRequest))

			r = a.do(http.MethodPost, "/api/users/"+alice.id+"/block", bob.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))

			r = a.do(http.MethodGet, "/api/users/"+bob.id, alice.token, nil)
			Expect(r.status).To(Equal(http.StatusForbidden))

			r = a.do(http.MethodGet, "/api/auth/me", alice.token, nil)
			Expect(r.data()["following"]).To(BeEmpty())

			r = a.do(http.MethodDelete, "/api/users/"+alice.id+"/unblock", bob.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKeyWithValue("message", "User has been unblocked"))
		})

		It("mostra blockedUsers só no próprio perfil, inclusive vazio", func() {
			alice := a.register("alice", "alice@example.com")
			bob := a.register("bob", "bob@example.com")

			r := a.do(http.MethodGet, "/api/users/"+alice.id, alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).To(HaveKeyWithValue("blockedUsers", BeEmpty()))

			r = a.do(http.MethodPost, "/api/users/"+bob.id+"/block", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))

			r = a.do(http.MethodGet, "/api/users/"+alice.id, alice.token, nil)
			Expect(r.data()).To(HaveKeyWithValue("blockedUsers", ConsistOf(bob.id)))

			r = a.do(http.MethodGet, "/api/users/"+alice.id, bob.token, nil)
			Expect(r.status).To(Equal(http.StatusForbidden))

			carol := a.register("carol", "carol@example.com")
			r = a.do(http.MethodGet, "/api/users/"+alice.id, carol.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).NotTo(HaveKey("blockedUsers"))
		})

		It("a listagem de usuários traz os follows reais", func() {
			alice := a.register("alice", "alice@example.com")
			bob := a.register("bob", "bob@example.com")

			r := a.do(http.MethodPost, "/api/users/"+bob.id+"/follow", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))

			r = a.do(http.MethodGet, "/api/users", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))

			var listed map[string]any
			for _, item := range r.list() {
				u := item.(map[string]any)
				if u["id"] == bob.id {
					listed = u
				}
			}
			Expect(listed).NotTo(BeNil())
			Expect(listed["followers"]).To(ConsistOf(alice.id))
			Expect(listed).NotTo(HaveKey("blockedUsers"))
		})

		It("atualiza o perfil", func() {
			alice := a.register("alice", "alice@example.com")

			r := a.do(http.MethodPut, "/api/users/profile", alice.token, map[string]string{"bio": "hi"})
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).To(HaveKeyWithValue("bio", "hi"))
		})
	})

	Describe("posts e curtidas", func() {
		It("curtir duas vezes responde 400 e likesCount acompanha", func() {
			alice := a.register("alice", "alice@example.com")
			bob := a.register("bob", "bob@example.com")

			r := a.do(http.MethodPost, "/api/posts", alice.token, map[string]string{"content": "hello"})
			Expect(r.status).To(Equal(http.StatusCreated))
			postID := r.data()["id"].(string)

			r = a.do(http.MethodPost, "/api/posts/"+postID+"/like", bob.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKeyWithValue("likesCount", BeNumerically("==", 1)))

			r = a.do(http.MethodPost, "/api/posts/"+postID+"/like", bob.token, nil)
			Expect(r.status).To(Equal(http.StatusBadRequest))
			Expect(r.body).To(HaveKeyWithValue("message", "Post already liked"))

			r = a.do(http.MethodDelete, "/api/posts/"+postID+"/unlike", bob.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKeyWithValue("likesCount", BeNumerically("==", 0)))

			r = a.do(http.MethodGet, "/api/posts?page=1&limit=10", bob.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.list()).To(HaveLen(1))
			Expect(r.body).To(HaveKeyWithValue("total", BeNumerically("==", 1)))
		})

		It("valida o conteúdo do post", func() {
			alice := a.register("alice", "alice@example.com")
			r := a.do(http.MethodPost, "/api/posts", alice.token, map[string]string{"content": ""})
			Expect(r.status).To(Equal(http.StatusBadRequest))
		})

		It("só o autor edita ou apaga", func() {
			alice := a.register("alice", "alice@example.com")
			bob := a.register("bob", "bob@example.com")

			r := a.do(http.MethodPost, "/api/posts", alice.token, map[string]string{"content": "mine"})
			postID := r.data()["id"].(string)

			r = a.do(http.MethodPut, "/api/posts/"+postID, bob.token, map[string]string{"content": "yours"})
			Expect(r.status).To(Equal(http.StatusForbidden))

			r = a.do(http.MethodDelete, "/api/posts/"+postID, alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))

			r = a.do(http.MethodGet, "/api/posts/"+postID, alice.token, nil)
			Expect(r.status).To(Equal(http.StatusNotFound))
		})
	})

	Describe("moderação", func() {
		var owner, admin, alice account

		BeforeEach(func() {
			owner = a.register("boss", ownerEmail)
			admin = a.register("moderator", "moderator@example.com")
			alice = a.register("alice", "alice@example.com")

			r := a.do(http.MethodPost, "/api/owner/admins", owner.token, map[string]string{"userId": admin.id})
			Expect(r.status).To(Equal(http.StatusOK), "%v", r.body)
		})

		It("admin remove post: atividade registrada e GET responde 404", func() {
			r := a.do(http.MethodPost, "/api/posts", alice.token, map[string]string{"content": "spam"})
			postID := r.data()["id"].(string)

			r = a.do(http.MethodDelete, "/api/admin/posts/"+postID, admin.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).To(HaveKeyWithValue("isDeleted", true))

			r = a.do(http.MethodGet, "/api/activities/user/"+alice.id, alice.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			first := r.list()[0].(map[string]any)
			Expect(first).To(HaveKeyWithValue("type", "post_deleted"))
			Expect(first).To(HaveKeyWithValue("message", "Post deleted by 'Admin'"))

			r = a.do(http.MethodGet, "/api/posts/"+postID, alice.token, nil)
			Expect(r.status).To(Equal(http.StatusNotFound))
			Expect(r.body).To(HaveKeyWithValue("message", "Post has been deleted"))
		})

		It("admin remove curtida de terceiros", func() {
			r := a.do(http.MethodPost, "/api/posts", alice.token, map[string]string{"content": "liked"})
			postID := r.data()["id"].(string)
			a.do(http.MethodPost, "/api/posts/"+postID+"/like", alice.token, nil)

			r = a.do(http.MethodDelete, "/api/admin/posts/"+postID+"/likes/"+alice.id, admin.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.body).To(HaveKeyWithValue("likesCount", BeNumerically("==", 0)))
		})

		It("usuário comum não acessa /admin e admin não acessa /owner", func() {
			r := a.do(http.MethodGet, "/api/admin/users", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusForbidden))

			r = a.do(http.MethodGet, "/api/owner/admins", admin.token, nil)
			Expect(r.status).To(Equal(http.StatusForbidden))

			r = a.do(http.MethodGet, "/api/admin/users", admin.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.list()).To(HaveLen(3))
		})

		It("owner nunca é removido e conta desativada perde o acesso", func() {
			r := a.do(http.MethodDelete, "/api/admin/users/"+owner.id, admin.token, nil)
			Expect(r.status).To(Equal(http.StatusForbidden))

			r = a.do(http.MethodDelete, "/api/admin/users/"+alice.id, admin.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))

			r = a.do(http.MethodGet, "/api/posts", alice.token, nil)
			Expect(r.status).To(Equal(http.StatusUnauthorized))
		})

		It("promote sem userId responde 400 e demote rebaixa", func() {
			r := a.do(http.MethodPost, "/api/owner/admins", owner.token, nil)
			Expect(r.status).To(Equal(http.StatusBadRequest))

			r = a.do(http.MethodGet, "/api/owner/admins", owner.token, nil)
			Expect(r.list()).To(HaveLen(2))

			r = a.do(http.MethodDelete, "/api/owner/admins/"+admin.id, owner.token, nil)
			Expect(r.status).To(Equal(http.StatusOK))
			Expect(r.data()).To(HaveKeyWithValue("role", "user"))

			// papel é lido do banco a cada requisição
			r = a.do(http.MethodGet, "/api/admin/users", admin.token, nil)
			Expect(r.status).To(Equal(http.StatusForbidden))
		})
	})
})
