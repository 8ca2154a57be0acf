package generator

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

// User is one synthetic identity for the benchmark workloads.
type User struct {
	Name  string
	Email string
	Age   int
}

// Post is one synthetic post attached to a user.
type Post struct {
	Title   string
	Content string
}

// Generator produces deterministic fake users and posts from a seed, so a
// benchmark run can be reproduced exactly.
type Generator struct {
	faker *gofakeit.Faker
	seq   int
}

func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// User returns a fresh identity. The sequence number is folded into the
// email local part so the unique email constraint never trips on a
// generated duplicate.
func (g *Generator) User() User {
	g.seq++

	return User{
		Name:  g.faker.Name(),
		Email: fmt.Sprintf("%s.%d@%s", g.faker.Username(), g.seq, g.faker.DomainName()),
		Age:   g.faker.Number(18, 80),
	}
}

// Users returns n fresh identities.
func (g *Generator) Users(n int) []User {
	users := make([]User, n)
	for i := range users {
		users[i] = g.User()
	}

	return users
}

// Post returns a fresh post.
func (g *Generator) Post() Post {
	return Post{
		Title:   g.faker.Sentence(4),
		Content: g.faker.Paragraph(1, 3, 12, " "),
	}
}
