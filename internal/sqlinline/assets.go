package sqlinline

const QInsertGeneratedAsset = `--sql 3f504e5a-ccd2-420f-9330-5e8c1b4bf209
insert into assets(
  id,
  user_id,
  session_id,
  kind,
  url,
  mime,
  prompt,
  width,
  height,
  provider,
  properties,
  created_at
) values (
  $1::uuid,
  $2::text,
  nullif($3::text, '')::uuid,
  $4::text,
  $5::text,
  $6::text,
  $7::text,
  $8::int,
  $9::int,
  $10::text,
  coalesce($11::jsonb, '{}'::jsonb),
  $12::timestamptz
);
`

const QSelectAssetForUser = `--sql 3616d9fe-3341-473e-bdc3-efa12fcb63ad
select
  id::text,
  user_id,
  coalesce(session_id::text, ''),
  kind,
  url,
  mime,
  prompt,
  width,
  height,
  provider,
  properties,
  created_at
from assets
where id = $1::uuid
  and user_id = $2::text
limit 1;
`

const QListAssetsByUser = `--sql 0be9c3f3-b174-4a2d-a92b-63216da4a80c
select
  id::text,
  user_id,
  coalesce(session_id::text, ''),
  kind,
  url,
  mime,
  prompt,
  width,
  height,
  provider,
  properties,
  created_at
from assets
where user_id = $1::text
order by created_at desc
limit $2::int offset $3::int;
`
