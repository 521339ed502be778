// Package election holds the domain model of a two-vote mixed-member
// proportional election (constituencies, regions, parties, seat tables) and
// the stages that turn vote tallies into a seat distribution:
//
//  1. TallyDirectMandates: constituency plurality winners per region.
//  2. RegionBaseline: nominal seats apportioned to regions by population.
//  3. Qualify: parties passing the vote-share or direct-mandate threshold.
//  4. RegionListSeats: each region's baseline apportioned among qualified parties.
//  5. MinimumSeats: per party and region, the larger of direct and list seats.
//  6. NationalTotals: national totals enlarged until every party's floor is met.
//  7. FinalDistribution: each party's national total spread across regions.
//
// Every stage is a pure function of its inputs and returns a fresh value.
package election
