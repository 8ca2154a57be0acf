package workload

import (
	"context"
	"log"
	"math/rand"
	"strconv"

	"github.com/skoredin/crossdb-bench/internal/benchmark"
	"github.com/skoredin/crossdb-bench/internal/engine"
	"github.com/skoredin/crossdb-bench/internal/generator"
)

// GraphPlan holds the iteration counts for one graph pass.
type GraphPlan struct {
	CreateNodes         int
	CreateRelationships int
	NodeLookups         int
	Traversals          int
	PatternMatches      int
	ShortestPaths       int
}

func DefaultGraphPlan() GraphPlan {
	return GraphPlan{
		CreateNodes:         100,
		CreateRelationships: 50,
		NodeLookups:         500,
		Traversals:          100,
		PatternMatches:      50,
		ShortestPaths:       25,
	}
}

// arangoImportBatch is the bulk size for ArangoDB node creation. The
// document store takes one bulk insert per batch where Neo4j takes one
// CREATE per node — a vendor capability difference, not a contract one.
const arangoImportBatch = 100

// GraphSuite drives the graph workload battery through the Runner. The
// logical operations mirror the relational suite; only the statement
// dialect (Cypher vs AQL) and node addressing differ.
type GraphSuite struct {
	conn   engine.Connection
	runner *benchmark.Runner
	gen    *generator.Generator
	rng    *rand.Rand

	// Monotonic id sources keep the uniqueness constraints on node ids
	// satisfied across seed and measured phases of one run.
	nextUserID int64
	nextPostID int64
}

func NewGraphSuite(conn engine.Connection, runner *benchmark.Runner, gen *generator.Generator, rng *rand.Rand) *GraphSuite {
	return &GraphSuite{conn: conn, runner: runner, gen: gen, rng: rng}
}

// Seed loads unmeasured reference nodes and edges.
func (s *GraphSuite) Seed(ctx context.Context, nodes, relationships int) error {
	for _, r := range s.CreateNodes(ctx, nodes) {
		if !r.Success {
			log.Printf("%s: seed node creation error: %s", s.conn.Vendor(), r.Error)
		}
	}

	for _, r := range s.CreateRelationships(ctx, relationships) {
		if !r.Success {
			log.Printf("%s: seed relationship error: %s", s.conn.Vendor(), r.Error)
		}
	}

	s.runner.ClearResults()

	return nil
}

// RunAll executes the full battery in the standard order and returns all
// records produced.
func (s *GraphSuite) RunAll(ctx context.Context, plan GraphPlan) []benchmark.Result {
	var results []benchmark.Result

	results = append(results, s.CreateNodes(ctx, plan.CreateNodes)...)
	results = append(results, s.CreateRelationships(ctx, plan.CreateRelationships)...)
	results = append(results, s.FindNodeByID(ctx, plan.NodeLookups)...)
	results = append(results, s.Traverse(ctx, plan.Traversals)...)
	results = append(results, s.PatternMatch(ctx, plan.PatternMatches)...)
	results = append(results, s.ShortestPath(ctx, plan.ShortestPaths)...)

	return results
}

func (s *GraphSuite) CreateNodes(ctx context.Context, numNodes int) []benchmark.Result {
	if s.conn.Vendor() == engine.VendorArangoDB {
		return s.createNodesBulk(ctx, numNodes)
	}

	results := make([]benchmark.Result, 0, numNodes)

	for i := 0; i < numNodes; i++ {
		u := s.gen.User()
		params := engine.Params{
			engine.P("id", s.nextUserID),
			engine.P("name", u.Name),
			engine.P("email", u.Email),
			engine.P("age", u.Age),
		}
		s.nextUserID++

		results = append(results, s.runner.Run(benchmark.OpCreateNode, func() (*engine.Result, error) {
			return s.conn.Execute(ctx,
				`CREATE (u:User {id: $id, name: $name, email: $email, age: $age})`,
				engine.Write, params)
		}))
	}

	return results
}

func (s *GraphSuite) createNodesBulk(ctx context.Context, numNodes int) []benchmark.Result {
	var results []benchmark.Result

	for created := 0; created < numNodes; created += arangoImportBatch {
		n := clamp(arangoImportBatch, numNodes-created)

		docs := make([]map[string]any, n)
		for i, u := range s.gen.Users(n) {
			docs[i] = map[string]any{
				"_key":  strconv.FormatInt(s.nextUserID, 10),
				"id":    s.nextUserID,
				"name":  u.Name,
				"email": u.Email,
				"age":   u.Age,
			}
			s.nextUserID++
		}

		params := engine.Params{engine.P("docs", docs)}

		results = append(results, s.runner.Run(benchmark.OpCreateNode, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, `FOR doc IN @docs INSERT doc INTO users`, engine.Write, params)
		}))
	}

	return results
}

func (s *GraphSuite) CreateRelationships(ctx context.Context, numRelationships int) []benchmark.Result {
	if s.conn.Vendor() == engine.VendorArangoDB {
		return s.createEdgesArango(ctx, numRelationships)
	}

	ids := s.sampleUserIDs(ctx, sampleLimit)
	if len(ids) == 0 {
		return nil
	}

	n := clamp(numRelationships, len(ids))
	results := make([]benchmark.Result, 0, n)

	for i := 0; i < n; i++ {
		post := s.gen.Post()
		params := engine.Params{
			engine.P("user_id", draw(s.rng, ids)),
			engine.P("post_id", s.nextPostID),
			engine.P("title", post.Title),
		}
		s.nextPostID++

		results = append(results, s.runner.Run(benchmark.OpCreateRelationship, func() (*engine.Result, error) {
			return s.conn.Execute(ctx,
				`MATCH (u:User {id: $user_id})
				 CREATE (p:Post {id: $post_id, title: $title})
				 CREATE (u)-[:WRITES]->(p)`,
				engine.Write, params)
		}))
	}

	return results
}

func (s *GraphSuite) createEdgesArango(ctx context.Context, numRelationships int) []benchmark.Result {
	keys := s.sampleUserKeys(ctx, sampleLimit)
	if len(keys) == 0 {
		return nil
	}

	n := clamp(numRelationships, len(keys))
	results := make([]benchmark.Result, 0, n)

	for i := 0; i < n; i++ {
		postKey := "post_" + strconv.FormatInt(s.nextPostID, 10)
		post := s.gen.Post()

		doc := map[string]any{
			"_key":  postKey,
			"id":    s.nextPostID,
			"title": post.Title,
		}
		s.nextPostID++

		// The post itself is support data; only the edge insert is timed.
		if _, err := s.conn.Execute(ctx, `INSERT @doc INTO posts`, engine.Write,
			engine.Params{engine.P("doc", doc)}); err != nil {
			log.Printf("arangodb: post insert failed: %v", err)
			continue
		}

		params := engine.Params{
			engine.P("from", "users/"+draw(s.rng, keys)),
			engine.P("to", "posts/"+postKey),
		}

		results = append(results, s.runner.Run(benchmark.OpCreateRelationship, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, `INSERT {_from: @from, _to: @to} INTO writes`, engine.Write, params)
		}))
	}

	return results
}

func (s *GraphSuite) FindNodeByID(ctx context.Context, numQueries int) []benchmark.Result {
	if s.conn.Vendor() == engine.VendorArangoDB {
		keys := s.sampleUserKeys(ctx, sampleLimit)
		if len(keys) == 0 {
			return nil
		}

		results := make([]benchmark.Result, 0, numQueries)

		for i := 0; i < numQueries; i++ {
			params := engine.Params{engine.P("key", draw(s.rng, keys))}

			results = append(results, s.runner.Run(benchmark.OpFindNodeByID, func() (*engine.Result, error) {
				return s.conn.Execute(ctx,
					`FOR u IN users FILTER u._key == @key RETURN u`,
					engine.Read, params)
			}))
		}

		return results
	}

	ids := s.sampleUserIDs(ctx, sampleLimit)
	if len(ids) == 0 {
		return nil
	}

	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{engine.P("id", draw(s.rng, ids))}

		results = append(results, s.runner.Run(benchmark.OpFindNodeByID, func() (*engine.Result, error) {
			return s.conn.Execute(ctx, `MATCH (u:User {id: $id}) RETURN u`, engine.Read, params)
		}))
	}

	return results
}

func (s *GraphSuite) Traverse(ctx context.Context, numQueries int) []benchmark.Result {
	if s.conn.Vendor() == engine.VendorArangoDB {
		keys := s.sampleUserKeys(ctx, joinSampleLimit)
		if len(keys) == 0 {
			return nil
		}

		results := make([]benchmark.Result, 0, numQueries)

		for i := 0; i < numQueries; i++ {
			params := engine.Params{engine.P("start", "users/"+draw(s.rng, keys))}

			results = append(results, s.runner.Run(benchmark.OpTraverse, func() (*engine.Result, error) {
				return s.conn.Execute(ctx,
					`FOR v, e, p IN 1..1 OUTBOUND @start writes RETURN v`,
					engine.Read, params)
			}))
		}

		return results
	}

	ids := s.sampleUserIDs(ctx, joinSampleLimit)
	if len(ids) == 0 {
		return nil
	}

	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{engine.P("id", draw(s.rng, ids))}

		results = append(results, s.runner.Run(benchmark.OpTraverse, func() (*engine.Result, error) {
			return s.conn.Execute(ctx,
				`MATCH (u:User {id: $id})-[:WRITES]->(p:Post)
				 RETURN u, collect(p) AS posts`,
				engine.Read, params)
		}))
	}

	return results
}

func (s *GraphSuite) PatternMatch(ctx context.Context, numQueries int) []benchmark.Result {
	results := make([]benchmark.Result, 0, numQueries)

	for i := 0; i < numQueries; i++ {
		params := engine.Params{engine.P("min_age", 18+s.rng.Intn(23))}

		if s.conn.Vendor() == engine.VendorArangoDB {
			results = append(results, s.runner.Run(benchmark.OpPatternMatching, func() (*engine.Result, error) {
				return s.conn.Execute(ctx,
					`FOR u IN users
					 FILTER u.age > @min_age
					 FOR v, e, p IN 1..1 OUTBOUND u writes
					 COLLECT user = u.name INTO posts = v.title
					 SORT LENGTH(posts) DESC
					 LIMIT 10
					 RETURN {user: user, posts: posts}`,
					engine.Read, params)
			}))

			continue
		}

		results = append(results, s.runner.Run(benchmark.OpPatternMatching, func() (*engine.Result, error) {
			return s.conn.Execute(ctx,
				`MATCH (u:User)-[:WRITES]->(p:Post)
				 WHERE u.age > $min_age
				 RETURN u.name, collect(p.title) AS posts
				 ORDER BY size(posts) DESC
				 LIMIT 10`,
				engine.Read, params)
		}))
	}

	return results
}

// ShortestPath needs two distinct endpoints per query; iterations clamp to
// half the sample so endpoint pairs stay varied.
func (s *GraphSuite) ShortestPath(ctx context.Context, numQueries int) []benchmark.Result {
	if s.conn.Vendor() == engine.VendorArangoDB {
		keys := s.sampleUserKeys(ctx, joinSampleLimit)
		if len(keys) < 2 {
			return nil
		}

		n := clamp(numQueries, len(keys)/2)
		results := make([]benchmark.Result, 0, n)

		for i := 0; i < n; i++ {
			start, end := s.pickPair(len(keys))
			params := engine.Params{
				engine.P("start", "users/"+keys[start]),
				engine.P("end", "users/"+keys[end]),
			}

			results = append(results, s.runner.Run(benchmark.OpShortestPath, func() (*engine.Result, error) {
				return s.conn.Execute(ctx,
					`FOR v IN ANY SHORTEST_PATH @start TO @end writes RETURN {key: v._key}`,
					engine.Read, params)
			}))
		}

		return results
	}

	ids := s.sampleUserIDs(ctx, joinSampleLimit)
	if len(ids) < 2 {
		return nil
	}

	n := clamp(numQueries, len(ids)/2)
	results := make([]benchmark.Result, 0, n)

	for i := 0; i < n; i++ {
		start, end := s.pickPair(len(ids))
		params := engine.Params{
			engine.P("start_id", ids[start]),
			engine.P("end_id", ids[end]),
		}

		results = append(results, s.runner.Run(benchmark.OpShortestPath, func() (*engine.Result, error) {
			return s.conn.Execute(ctx,
				`MATCH path = shortestPath((a:User {id: $start_id})-[*]-(b:User {id: $end_id}))
				 RETURN path`,
				engine.Read, params)
		}))
	}

	return results
}

// pickPair returns two distinct indices in [0, n).
func (s *GraphSuite) pickPair(n int) (int, int) {
	start := s.rng.Intn(n)

	end := s.rng.Intn(n - 1)
	if end >= start {
		end++
	}

	return start, end
}

func (s *GraphSuite) sampleUserIDs(ctx context.Context, limit int) []int64 {
	res, err := s.conn.Execute(ctx,
		`MATCH (u:User) RETURN u.id AS id LIMIT `+strconv.Itoa(limit),
		engine.Read, nil)
	if err != nil {
		log.Printf("%s: node id sampling failed: %v", s.conn.Vendor(), err)
		return nil
	}

	return intColumn(res.Rows, "id")
}

func (s *GraphSuite) sampleUserKeys(ctx context.Context, limit int) []string {
	res, err := s.conn.Execute(ctx,
		`FOR u IN users LIMIT `+strconv.Itoa(limit)+` RETURN {key: u._key}`,
		engine.Read, nil)
	if err != nil {
		log.Printf("%s: node key sampling failed: %v", s.conn.Vendor(), err)
		return nil
	}

	return stringColumn(res.Rows, "key")
}
