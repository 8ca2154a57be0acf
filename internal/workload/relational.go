package workload

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/skoredin/crossdb-bench/internal/benchmark"
	"github.com/skoredin/crossdb-bench/internal/engine"
	"github.com/skoredin/crossdb-bench/internal/generator"
)

// Statements are authored once with %s placeholder tokens; the engine's
// Parameter Translator rewrites them to the driver's native form. Bindings
// are declared in placeholder order — that positional contract is what
// keeps these statements engine-agnostic across the SQL family.
const (
	insertUserSQL = `INSERT INTO users (name, email, age) VALUES (%s, %s, %s)`

	selectByIDSQL    = `SELECT * FROM users WHERE id = %s`
	selectByEmailSQL = `SELECT * FROM users WHERE email = %s`

	selectWithJoinSQL = `SELECT u.id, u.name, u.email, p.id AS post_id, p.title
		FROM users u
		LEFT JOIN posts p ON u.id = p.user_id
		WHERE u.id = %s`

	updateAgeSQL  = `UPDATE users SET age = %s WHERE id = %s`
	deleteUserSQL = `DELETE FROM users WHERE id = %s`

	aggregateSQL = `SELECT
		COUNT(*) AS total_users,
		AVG(age) AS avg_age,
		MIN(age) AS min_age,
		MAX(age) AS max_age
		FROM users`

	complexQuerySQL = `SELECT u.id, u.name, u.email, COUNT(p.id) AS post_count
		FROM users u
		LEFT JOIN posts p ON u.id = p.user_id
		WHERE u.age BETWEEN %s AND %s
		GROUP BY u.id, u.name, u.email
		HAVING COUNT(p.id) > 0
		ORDER BY post_count DESC
		LIMIT 10`

	insertPostSQL = `INSERT INTO posts (user_id, title, content) VALUES (%s, %s, %s)`
)

// RelationalPlan holds the iteration counts for one relational pass.
type RelationalPlan struct {
	InsertSingle    int
	InsertBatchSize int
	InsertBatches   int
	PointLookups    int
	IndexedLookups  int
	JoinQueries     int
	Updates         int
	Deletes         int
	Aggregates      int
	ComplexQueries  int
}

func DefaultRelationalPlan() RelationalPlan {
	return RelationalPlan{
		InsertSingle:    100,
		InsertBatchSize: 50,
		InsertBatches:   5,
		PointLookups:    500,
		IndexedLookups:  500,
		JoinQueries:     100,
		Updates:         500,
		Deletes:         50,
		Aggregates:      50,
		ComplexQueries:  25,
	}
}

// RelationalSuite drives the SQL workload battery through the Runner.
type RelationalSuite struct {
	conn   engine.Connection
	runner *benchmark.Runner
	gen    *generator.Generator
	rng    *rand.Rand
}

func NewRelationalSuite(conn engine.Connection, runner *benchmark.Runner, gen *generator.Generator, rng *rand.Rand) *RelationalSuite {
	return &RelationalSuite{conn: conn, runner: runner, gen: gen, rng: rng}
}

// Seed loads unmeasured reference data: a block of users plus posts for
// half of the sampled users, so the join and pattern workloads have edges
// to follow.
func (s *RelationalSuite) Seed(ctx context.Context, users, posts int) error {
	batch := 100
	for inserted := 0; inserted < users; inserted += batch {
		n := clamp(batch, users-inserted)

		query, params := s.batchInsert(n)
		if _, err := s.conn.Execute(ctx, query, engine.Write, params); err != nil {
			return err
		}
	}

	ids := s.sampleIDs(ctx, joinSampleLimit)

	for i := 0; i < clamp(posts, len(ids)); i++ {
		post := s.gen.Post()
		params := engine.Params{
			engine.P("user_id", draw(s.rng, ids)),
			engine.P("title", post.Title),
			engine.P("content", post.Content),
		}

		if _, err := s.conn.Execute(ctx, insertPostSQL, engine.Write, params); err != nil {
			return err
		}
	}

	return nil
}

// RunAll executes the full battery in the standard order and returns all
// records produced.
func (s *RelationalSuite) RunAll(ctx context.Context, plan RelationalPlan) []benchmark.Result {
	var results []benchmark.Result

	results = append(results, s.InsertSingle(ctx, plan.InsertSingle)...)
	results = append(results, s.InsertBatch(ctx, plan.InsertBatchSize, plan.InsertBatches)...)
	results = append(results, s.SelectByID(ctx, plan.PointLookups)...)
	results = append(results, s.SelectByEmail(ctx, plan.IndexedLookups)...)
	results = append(results, s.SelectWithJoin(ctx, plan.JoinQueries)...)
	results = append(results, s.Update(ctx, plan.Updates)...)
	results = append(results, s.Aggregate(ctx, plan.Aggregates)...)
	results = append(results, s.ComplexQuery(ctx, plan.ComplexQueries)...)
	results = append(results, s.Delete(ctx, plan.Deletes)...)

	return results
}

func (s *RelationalSuite) InsertSingle(ctx context.Context, numRecords int) []benchmark.Result {
	results := make([]benchmark.Result, 0, numRecords)

	for i := 0; i < numRecords; i++ {
		u := s.gen.User()
		params := engine.Params{
			engine.P("name", u.Name),
			engine.P("email", u.Email),
			engine.P("age", u.Age),
		}

		results = append(results, s.runner.Run(benchmark.OpInsertSingle, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, insertUserSQL, engine.Write, params)
		}))
	}

	return results
}

func (s *RelationalSuite) InsertBatch(ctx context.Context, batchSize, numBatches int) []benchmark.Result {
	results := make([]benchmark.Result, 0, numBatches)

	for b := 0; b < numBatches; b++ {
		query, params := s.batchInsert(batchSize)

		results = append(results, s.runner.Run(benchmark.OpInsertBatch, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, query, engine.Write, params)
		}))
	}

	return results
}

func (s *RelationalSuite) batchInsert(batchSize int) (string, engine.Params) {
	values := make([]string, 0, batchSize)
	params := make(engine.Params, 0, batchSize*3)

	for _, u := range s.gen.Users(batchSize) {
		values = append(values, "(%s, %s, %s)")
		params = append(params,
			engine.P("name", u.Name),
			engine.P("email", u.Email),
			engine.P("age", u.Age),
		)
	}

	return `INSERT INTO users (name, email, age) VALUES ` + strings.Join(values, ", "), params
}

func (s *RelationalSuite) SelectByID(ctx context.Context, numQueries int) []benchmark.Result {
	ids := s.sampleIDs(ctx, sampleLimit)
	if len(ids) == 0 {
		return nil
	}

	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{engine.P("id", draw(s.rng, ids))}

		results = append(results, s.runner.Run(benchmark.OpSelectByID, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, selectByIDSQL, engine.Read, params)
		}))
	}

	return results
}

func (s *RelationalSuite) SelectByEmail(ctx context.Context, numQueries int) []benchmark.Result {
	emails := s.sampleEmails(ctx)
	if len(emails) == 0 {
		return nil
	}

	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{engine.P("email", draw(s.rng, emails))}

		results = append(results, s.runner.Run(benchmark.OpSelectByEmail, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, selectByEmailSQL, engine.Read, params)
		}))
	}

	return results
}

func (s *RelationalSuite) SelectWithJoin(ctx context.Context, numQueries int) []benchmark.Result {
	ids := s.sampleIDs(ctx, joinSampleLimit)
	if len(ids) == 0 {
		return nil
	}

	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{engine.P("id", draw(s.rng, ids))}

		results = append(results, s.runner.Run(benchmark.OpSelectWithJoin, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, selectWithJoinSQL, engine.Read, params)
		}))
	}

	return results
}

func (s *RelationalSuite) Update(ctx context.Context, numUpdates int) []benchmark.Result {
	ids := s.sampleIDs(ctx, sampleLimit)
	if len(ids) == 0 {
		return nil
	}

	results := make([]benchmark.Result, 0, numUpdates)

	for i := 0; i < numUpdates; i++ {
		params := engine.Params{
			engine.P("age", 18+s.rng.Intn(63)),
			engine.P("id", draw(s.rng, ids)),
		}

		results = append(results, s.runner.Run(benchmark.OpUpdate, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, updateAgeSQL, engine.Write, params)
		}))
	}

	return results
}

// Delete consumes ids from its working set so the same row is never
// targeted twice; iterations clamp to the sample size.
func (s *RelationalSuite) Delete(ctx context.Context, numDeletes int) []benchmark.Result {
	ids := s.sampleIDs(ctx, sampleLimit)
	if len(ids) == 0 {
		return nil
	}

	n := clamp(numDeletes, len(ids))
	results := make([]benchmark.Result, 0, n)

	for i := 0; i < n; i++ {
		var id int64
		id, ids = consume(s.rng, ids)

		params := engine.Params{engine.P("id", id)}

		results = append(results, s.runner.Run(benchmark.OpDelete, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, deleteUserSQL, engine.Write, params)
		}))
	}

	return results
}

func (s *RelationalSuite) Aggregate(ctx context.Context, numQueries int) []benchmark.Result {
	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		results = append(results, s.runner.Run(benchmark.OpAggregate, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, aggregateSQL, engine.Read, nil)
		}))
	}

	return results
}

func (s *RelationalSuite) ComplexQuery(ctx context.Context, numQueries int) []benchmark.Result {
	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{
			engine.P("min_age", 18+s.rng.Intn(23)),
			engine.P("max_age", 41+s.rng.Intn(40)),
		}

		results = append(results, s.runner.Run(benchmark.OpComplexQuery, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, complexQuerySQL, engine.Read, params)
		}))
	}

	return results
}

func (s *RelationalSuite) sampleIDs(ctx context.Context, limit int) []int64 {
	res, err := s.conn.Execute(ctx, sampleQuery("id", limit), engine.Read, nil)
	if err != nil {
		log.Printf("%s: id sampling failed: %v", s.conn.Vendor(), err)
		return nil
	}

	return intColumn(res.Rows, "id")
}

func (s *RelationalSuite) sampleEmails(ctx context.Context) []string {
	res, err := s.conn.Execute(ctx, sampleQuery("email", sampleLimit), engine.Read, nil)
	if err != nil {
		log.Printf("%s: email sampling failed: %v", s.conn.Vendor(), err)
		return nil
	}

	return stringColumn(res.Rows, "email")
}

func sampleQuery(column string, limit int) string {
	return "SELECT " + column + " FROM users LIMIT " + strconv.Itoa(limit)
}
