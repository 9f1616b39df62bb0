package sqlinline

const QSelectOrSeedEntitlement = `--sql 293394e9-de0c-41e0-9059-7ce6663ddaf6
with seeded as (
  insert into entitlements (user_id, free_credits, paid_credits, subscription, version, created_at, updated_at)
  values ($1::text, $2::int, 0, 'free', 1, now(), now())
  on conflict (user_id) do nothing
  returning user_id, free_credits, paid_credits, subscription, version, updated_at
)
select user_id, free_credits, paid_credits, subscription, version, updated_at from seeded
union all
select user_id, free_credits, paid_credits, subscription, version, updated_at
from entitlements
where user_id = $1::text
limit 1;
`

const QUpdateEntitlement = `--sql 810a553d-b3cd-4050-a76f-8f9ab89677ab
update entitlements set
  free_credits = $2::int,
  paid_credits = $3::int,
  subscription = $4::text,
  version = version + 1,
  updated_at = now()
where user_id = $1::text
  and version = $5::bigint
returning user_id, free_credits, paid_credits, subscription, version, updated_at;
`
